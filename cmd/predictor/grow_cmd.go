package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	predictor "github.com/scarbrob/Voting-Predictor"
	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature/yaml"
	"github.com/scarbrob/Voting-Predictor/tree"
	"github.com/scarbrob/Voting-Predictor/tree/json"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput          string
	output             string
	stride             int
	legacy             bool
	jsonOutput         bool
	all                bool
	cpuIntensiveSet    bool
	memoryIntensiveSet bool
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of voting records",
		Long:  `Grow a decision tree that predicts the party of a voter from the working set of a dataset of voting records.`,
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
			training := ds
			if !config.all {
				training, _, err = dataset.WorkingSet(ctx, ds, config.stride)
				if err != nil {
					config.exit(err, exitComputation)
				}
			}
			t, err := config.grow(ctx, training)
			if err != nil {
				config.exit(err, exitComputation)
			}
			f, err := outputFile(config.output)
			if err != nil {
				config.exit(err, exitOutput)
			}
			config.onExit(func() { f.Close() })
			err = config.writeTree(ctx, f, t, md)
			if err != nil {
				config.exit(err, exitOutput)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written (defaults to STDOUT)")
	cmd.PersistentFlags().IntVar(&(config.stride), "stride", dataset.DefaultStride, "take one every stride records as working set")
	cmd.PersistentFlags().BoolVar(&(config.legacy), "legacy", false, "keep every issue available at every depth and only develop the aye branch")
	cmd.PersistentFlags().BoolVar(&(config.jsonOutput), "json", false, "write the tree in JSON format")
	cmd.PersistentFlags().BoolVar(&(config.all), "all", false, "grow the tree on the whole dataset instead of the working set")
	cmd.PersistentFlags().BoolVar(&(config.memoryIntensiveSet), "memory-intensive", false, "force the use of memory-intensive subsetting to decrease time at the cost of increasing memory use")
	cmd.PersistentFlags().BoolVar(&(config.cpuIntensiveSet), "cpu-intensive", false, "force the use of cpu-intensive subsetting to decrease memory use at the cost of increasing time")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.stride < 1 {
		return fmt.Errorf("stride must be at least 1, got %d", gcc.stride)
	}
	if gcc.cpuIntensiveSet && gcc.memoryIntensiveSet {
		return fmt.Errorf("cannot set both memory-intensive and cpu-intensive flags at the same time")
	}
	return nil
}

func (gcc *growCmdConfig) strategy() predictor.Strategy {
	if gcc.legacy {
		return predictor.Legacy
	}
	return predictor.ID3
}

// subsetting rebuilds the dataset with the subsetting implementation forced
// by the flags, if any.
func (gcc *growCmdConfig) subsetting(ctx context.Context, ds dataset.Dataset) (dataset.Dataset, error) {
	if !gcc.memoryIntensiveSet && !gcc.cpuIntensiveSet {
		return ds, nil
	}
	records, err := ds.Records(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return ds, nil
	}
	if gcc.memoryIntensiveSet {
		return dataset.NewMemoryIntensive(records)
	}
	return dataset.NewCPUIntensive(records)
}

func (gcc *growCmdConfig) grow(ctx context.Context, ds dataset.Dataset) (*tree.Tree, error) {
	ds, err := gcc.subsetting(ctx, ds)
	if err != nil {
		return nil, err
	}
	count, err := ds.Count(ctx)
	if err != nil {
		return nil, err
	}
	issues, err := ds.Issues(ctx)
	if err != nil {
		return nil, err
	}
	gcc.Logf("Growing %s tree from %d records with %d issues...", gcc.strategy(), count, issues)
	t, err := predictor.Grow(ctx, ds, predictor.WithStrategy(gcc.strategy()), predictor.WithLogger(gcc.Logger()))
	if err != nil {
		return nil, err
	}
	gcc.Logf("Done")
	return t, nil
}

func (gcc *growCmdConfig) writeTree(ctx context.Context, w io.Writer, t *tree.Tree, md *yaml.Metadata) error {
	if gcc.jsonOutput {
		return json.WriteJSONTree(ctx, t, md.IssueName, md.Labels, w)
	}
	s, err := t.Format(ctx, md.IssueName, md.Labels)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}
