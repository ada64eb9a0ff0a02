package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
	redis "gopkg.in/redis.v5"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/dataset/mongodataset"
	"github.com/scarbrob/Voting-Predictor/dataset/redisdataset"
	"github.com/scarbrob/Voting-Predictor/dataset/sqldataset"
	"github.com/scarbrob/Voting-Predictor/dataset/sqldataset/pgadapter"
	"github.com/scarbrob/Voting-Predictor/dataset/sqldataset/sqlite3adapter"
	"github.com/scarbrob/Voting-Predictor/dataset/tsv"
	"github.com/scarbrob/Voting-Predictor/feature"
)

type setCmdConfig struct {
	*rootCmdConfig
	dataInput string
	target    string
	output    string
}

type recordWriter interface {
	Write(context.Context, []dataset.Record) (int, error)
}

type recordReader interface {
	Read(context.Context) (<-chan dataset.Record, <-chan error)
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage datasets of voting records",
		Long:  `Move datasets of voting records between files and databases`,
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage)
	cmd.AddCommand(importCmd(config), exportCmd(config))
	return cmd
}

func importCmd(config *setCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a dataset into a database",
		Long:  `Copy a dataset into a SQLite3 (.db) file, or a PostgreSQL (postgresql://), MongoDB (mongodb://) or Redis (redis://host/key) database`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.target == "" {
				config.exit(fmt.Errorf("required destination flag was not set"), exitArgs)
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
			n, err := config.importDataset(ctx, ds, md.Labels)
			if err != nil {
				config.exit(err, exitOutput)
			}
			config.Logf("%d records imported into %s", n, config.target)
		},
	}
	cmd.Flags().StringVarP(&(config.target), "destination", "d", "", "path to a SQLite3 (.db) file, or a PostgreSQL, MongoDB or Redis URL to copy the dataset into (required)")
	return cmd
}

func exportCmd(config *setCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump a dataset as text",
		Long:  `Dump a dataset, possibly held on a database, as text with a record per line`,
		Run: func(cmd *cobra.Command, args []string) {
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
			f, err := outputFile(config.output)
			if err != nil {
				config.exit(err, exitOutput)
			}
			config.onExit(func() { f.Close() })
			w := tsv.NewWriter(f, md.Labels)
			if err = config.export(ctx, ds, w); err != nil {
				config.exit(err, exitOutput)
			}
			if err = w.Flush(); err != nil {
				config.exit(err, exitOutput)
			}
			config.Logf("%d records exported", w.Count())
		},
	}
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to dump the dataset (defaults to STDOUT)")
	return cmd
}

// export streams the records of datasets that can be read sequentially and
// loads the rest at once.
func (scc *setCmdConfig) export(ctx context.Context, ds dataset.Dataset, w tsv.Writer) error {
	rr, ok := ds.(recordReader)
	if !ok {
		records, err := ds.Records(ctx)
		if err != nil {
			return err
		}
		_, err = w.Write(ctx, records)
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	records, errs := rr.Read(ctx)
	for r := range records {
		if _, err := w.Write(ctx, []dataset.Record{r}); err != nil {
			return err
		}
	}
	return <-errs
}

func (scc *setCmdConfig) importDataset(ctx context.Context, ds dataset.Dataset, labels feature.Labels) (int, error) {
	if strings.HasPrefix(scc.target, "redis://") {
		opts, key, err := redisdataset.ParseURL(scc.target)
		if err != nil {
			return 0, err
		}
		rc := redis.NewClient(opts)
		defer rc.Close()
		scc.Logf("Storing records on redis list %s at %s...", key, opts.Addr)
		return redisdataset.Store(ctx, rc, key, ds, labels)
	}
	issues, err := ds.Issues(ctx)
	if err != nil {
		return 0, err
	}
	w, closeFn, err := scc.targetWriter(ctx, issues)
	if err != nil {
		return 0, err
	}
	defer closeFn()
	records, err := ds.Records(ctx)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	return w.Write(ctx, records)
}

func (scc *setCmdConfig) targetWriter(ctx context.Context, issues int) (recordWriter, func(), error) {
	var adapter sqldataset.Adapter
	var err error
	switch {
	case strings.HasPrefix(scc.target, "mongodb://"):
		scc.Logf("Connecting to MongoDB at %s...", scc.target)
		session, err := mgo.Dial(scc.target)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "connecting to %s", scc.target)
		}
		mds, err := mongodataset.Open(ctx, session, issues)
		if err != nil {
			session.Close()
			return nil, nil, err
		}
		return mds, session.Close, nil
	case strings.HasPrefix(scc.target, "postgresql://"):
		scc.Logf("Creating PostgreSQL adapter for url %s...", scc.target)
		adapter, err = pgadapter.New(scc.target)
	case strings.HasSuffix(scc.target, ".db"):
		scc.Logf("Creating SQLite3 adapter for file %s...", scc.target)
		adapter, err = sqlite3adapter.New(scc.target)
	default:
		return nil, nil, errors.Errorf("unsupported destination %s", scc.target)
	}
	if err != nil {
		return nil, nil, err
	}
	set, err := sqldataset.Create(ctx, adapter, issues)
	if err != nil {
		adapter.Close()
		return nil, nil, err
	}
	return set, func() { adapter.Close() }, nil
}
