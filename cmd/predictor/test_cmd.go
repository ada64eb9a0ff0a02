package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scarbrob/Voting-Predictor/dataset"
)

type testCmdConfig struct {
	*growCmdConfig
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{&growCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Grow a tree from the working set of a dataset and test its success rate predicting the party of the rest of the records`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.exit(err, exitArgs)
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
			training, testing, err := dataset.WorkingSet(ctx, ds, config.stride)
			if err != nil {
				config.exit(err, exitComputation)
			}
			t, err := config.grow(ctx, training)
			if err != nil {
				config.exit(err, exitComputation)
			}
			count, err := testing.Count(ctx)
			if err != nil {
				config.exit(err, exitComputation)
			}
			config.Logf("Testing tree against %d records...", count)
			successRate, err := t.Test(ctx, testing)
			if err != nil {
				config.exit(err, exitComputation)
			}
			depth, err := t.Depth(ctx)
			if err != nil {
				config.exit(err, exitComputation)
			}
			fmt.Printf("%d records tested, success rate: %.2f%%, tree depth: %d\n", count, successRate*100, depth)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage)
	cmd.PersistentFlags().IntVar(&(config.stride), "stride", dataset.DefaultStride, "take one every stride records as working set, test on the rest")
	cmd.PersistentFlags().BoolVar(&(config.legacy), "legacy", false, "keep every issue available at every depth and only develop the aye branch")
	return cmd
}
