package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	redis "gopkg.in/redis.v5"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/dataset/mongodataset"
	"github.com/scarbrob/Voting-Predictor/dataset/redisdataset"
	"github.com/scarbrob/Voting-Predictor/dataset/sqldataset"
	"github.com/scarbrob/Voting-Predictor/dataset/sqldataset/pgadapter"
	"github.com/scarbrob/Voting-Predictor/dataset/sqldataset/sqlite3adapter"
	"github.com/scarbrob/Voting-Predictor/dataset/tsv"
	"github.com/scarbrob/Voting-Predictor/feature/yaml"
)

const (
	exitArgs = iota + 1
	exitMetadata
	exitInput
	exitComputation
	exitOutput
)

const inputFlagUsage = "path to an input file or SQLite3 (.db) file, or a PostgreSQL (postgresql://), MongoDB (mongodb://) or Redis (redis://host/key) URL with the voting records (defaults to STDIN)"

var osExit = os.Exit

// onExit registers a function to release a resource when the command ends.
func (rcc *rootCmdConfig) onExit(f func()) {
	rcc.closers = append(rcc.closers, f)
}

// close runs the registered functions, last registered first.
func (rcc *rootCmdConfig) close() {
	for i := len(rcc.closers) - 1; i >= 0; i-- {
		rcc.closers[i]()
	}
	rcc.closers = nil
}

func (rcc *rootCmdConfig) exit(err error, code int) {
	rcc.close()
	fmt.Fprintln(os.Stderr, err)
	osExit(code)
}

func (rcc *rootCmdConfig) Metadata() (*yaml.Metadata, error) {
	if rcc.metadataInput == "" {
		return yaml.Default(), nil
	}
	rcc.Logf("Reading metadata from %s...", rcc.metadataInput)
	return yaml.ReadMetadataFromFile(rcc.metadataInput)
}

/*
Dataset opens the dataset the input points to and returns it with a function
to release any connection held to read it.
*/
func (rcc *rootCmdConfig) Dataset(ctx context.Context, input string, md *yaml.Metadata) (dataset.Dataset, func(), error) {
	noop := func() {}
	switch {
	case strings.HasPrefix(input, "postgresql://"):
		rcc.Logf("Creating PostgreSQL adapter for url %s...", input)
		adapter, err := pgadapter.New(input)
		if err != nil {
			return nil, noop, err
		}
		return rcc.sqlDataset(ctx, adapter)
	case strings.HasSuffix(input, ".db"):
		rcc.Logf("Creating SQLite3 adapter for file %s...", input)
		adapter, err := sqlite3adapter.New(input)
		if err != nil {
			return nil, noop, err
		}
		return rcc.sqlDataset(ctx, adapter)
	case strings.HasPrefix(input, "mongodb://"):
		rcc.Logf("Connecting to MongoDB at %s...", input)
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, noop, errors.Wrapf(err, "connecting to %s", input)
		}
		ds, err := mongodataset.Open(ctx, session, 0)
		if err != nil {
			session.Close()
			return nil, noop, err
		}
		return ds, session.Close, nil
	case strings.HasPrefix(input, "redis://"):
		opts, key, err := redisdataset.ParseURL(input)
		if err != nil {
			return nil, noop, err
		}
		rcc.Logf("Loading records from redis list %s at %s...", key, opts.Addr)
		rc := redis.NewClient(opts)
		defer rc.Close()
		ds, err := redisdataset.Load(ctx, rc, key, md.Labels)
		return ds, noop, err
	}
	if input == "" {
		rcc.Logf("Reading records from STDIN...")
	} else {
		rcc.Logf("Reading records from %s...", input)
	}
	ds, err := tsv.ReadDatasetFromFilePath(input, md.Labels)
	return ds, noop, err
}

func (rcc *rootCmdConfig) sqlDataset(ctx context.Context, adapter sqldataset.Adapter) (dataset.Dataset, func(), error) {
	ds, err := sqldataset.Open(ctx, adapter)
	if err != nil {
		adapter.Close()
		return nil, func() {}, err
	}
	return ds, func() { adapter.Close() }, nil
}

func outputFile(path string) (*os.File, error) {
	if path == "" {
		return os.Stdout, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", path)
	}
	return f, nil
}
