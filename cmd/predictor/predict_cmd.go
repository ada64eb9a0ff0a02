package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	predictor "github.com/scarbrob/Voting-Predictor"
	"github.com/scarbrob/Voting-Predictor/dataset"
)

var errInvalidIssue = errors.New("invalid issue")

type predictCmdConfig struct {
	*rootCmdConfig
	dataInput string
	stride    int
	issue     int
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict ISSUE",
		Short: "Predict the party of voters from their vote on an issue",
		Long:  `Predict the party of voters from their vote on a single issue, numbered from 1, using the majority of the working set.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate(args)
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
			picked, _, err := dataset.WorkingSet(ctx, ds, config.stride)
			if err != nil {
				config.exit(err, exitComputation)
			}
			config.Logf("Predicting from votes on %s...", md.IssueName(config.issue))
			b, err := predictor.Majority(ctx, picked, config.issue)
			if err != nil {
				config.exit(err, exitComputation)
			}
			fmt.Println(b.Format(md.Labels))
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage)
	cmd.PersistentFlags().IntVar(&(config.stride), "stride", dataset.DefaultStride, "take one every stride records as working set")
	return cmd
}

func (pcc *predictCmdConfig) Validate(args []string) error {
	issue, err := parseIssue(args[0])
	if err != nil {
		return err
	}
	pcc.issue = issue
	if pcc.stride < 1 {
		return fmt.Errorf("stride must be at least 1, got %d", pcc.stride)
	}
	return nil
}

// parseIssue turns a 1-based issue argument into a 0-based issue index.
func parseIssue(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Wrapf(errInvalidIssue, "%q is not a number", arg)
	}
	if n < 1 {
		return 0, errors.Wrapf(errInvalidIssue, "issues are numbered from 1, got %d", n)
	}
	return n - 1, nil
}
