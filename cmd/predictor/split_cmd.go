package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/dataset/tsv"
)

type splitCmdConfig struct {
	*rootCmdConfig
	dataInput   string
	output      string
	splitOutput string
	stride      int
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a dataset into its working set and the rest",
		Long:  `Split a dataset into an output set with its working set and a split set with the rest of the records`,
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
			picked, rest, err := dataset.WorkingSet(ctx, ds, config.stride)
			if err != nil {
				config.exit(err, exitComputation)
			}

			out, err := outputFile(config.output)
			if err != nil {
				config.exit(err, exitOutput)
			}
			config.onExit(func() { out.Close() })
			config.Logf("Writing working set...")
			err = tsv.WriteDataset(ctx, out, picked, md.Labels)
			if err != nil {
				config.exit(err, exitOutput)
			}

			splitOut, err := outputFile(config.splitOutput)
			if err != nil {
				config.exit(err, exitOutput)
			}
			config.onExit(func() { splitOut.Close() })
			config.Logf("Writing split set to %s...", config.splitOutput)
			err = tsv.WriteDataset(ctx, splitOut, rest, md.Labels)
			if err != nil {
				config.exit(err, exitOutput)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to dump the working set (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.splitOutput), "split", "s", "", "path to a file to dump the rest of the records (required)")
	cmd.PersistentFlags().IntVar(&(config.stride), "stride", dataset.DefaultStride, "take one every stride records as working set")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.splitOutput == "" {
		return fmt.Errorf("required split flag was not set")
	}
	if scc.stride < 1 {
		return fmt.Errorf("stride must be at least 1, got %d", scc.stride)
	}
	return nil
}
