package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/dataset/inputrecord"
)

type classifyCmdConfig struct {
	*growCmdConfig
}

func classifyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &classifyCmdConfig{&growCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Predict the party of a voter",
		Long:  `Grow a tree from the working set of a dataset and use it to predict the party of a voter whose votes are asked through STDIN as the tree needs them`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.exit(err, exitArgs)
			}
			if config.dataInput == "" {
				config.exit(fmt.Errorf("required input flag was not set: STDIN is used to read votes"), exitArgs)
			}
			md, err := config.Metadata()
			if err != nil {
				config.exit(err, exitMetadata)
			}
			ctx := context.Background()
			ds, closeFn, err := config.Dataset(ctx, config.dataInput, md)
			if err != nil {
				config.exit(err, exitInput)
			}
			config.onExit(closeFn)
			training := ds
			if !config.all {
				training, _, err = dataset.WorkingSet(ctx, ds, config.stride)
				if err != nil {
					config.exit(err, exitComputation)
				}
			}
			issues, err := training.Issues(ctx)
			if err != nil {
				config.exit(err, exitComputation)
			}
			t, err := config.grow(ctx, training)
			if err != nil {
				config.exit(err, exitComputation)
			}
			voter := inputrecord.New(os.Stdin, issues, inputrecord.NewPrompter(os.Stdout, md.IssueName))
			p, err := t.Predict(ctx, voter)
			if err != nil {
				config.exit(err, exitComputation)
			}
			fmt.Printf("Predicted party: %s %v\n", md.Labels.Token(p.PredictedValue()), p.VoteCount())
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input file or SQLite3 (.db) file, or a PostgreSQL, MongoDB or Redis URL with the voting records (required)")
	cmd.PersistentFlags().IntVar(&(config.stride), "stride", dataset.DefaultStride, "take one every stride records as working set")
	cmd.PersistentFlags().BoolVar(&(config.legacy), "legacy", false, "keep every issue available at every depth and only develop the aye branch")
	cmd.PersistentFlags().BoolVar(&(config.all), "all", false, "grow the tree on the whole dataset instead of the working set")
	return cmd
}
