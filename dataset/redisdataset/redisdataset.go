/*
Package redisdataset keeps datasets on redis as a list of lines in the
format read and written by the tsv package, one record per list element.
*/
package redisdataset

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	redis "gopkg.in/redis.v5"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/dataset/tsv"
	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
Load takes a redis client, the key of a list and the labels to map party
tokens with and returns a memory dataset with the records in the list, or an
error if the list cannot be read or parsed.
*/
func Load(ctx context.Context, rc *redis.Client, key string, labels feature.Labels) (dataset.Dataset, error) {
	lines, err := rc.LRange(key, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "reading redis list %s", key)
	}
	ds, err := tsv.ReadDataset(strings.NewReader(strings.Join(lines, "\n")), labels)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing redis list %s", key)
	}
	return ds, nil
}

/*
Store takes a redis client, the key of a list, a dataset and the labels to
render parties with and replaces the list with the records of the dataset.
The replacement is done in a single transaction. It returns the number of
records stored.
*/
func Store(ctx context.Context, rc *redis.Client, key string, ds dataset.Dataset, labels feature.Labels) (int, error) {
	records, err := ds.Records(ctx)
	if err != nil {
		return 0, err
	}
	lines := make([]interface{}, 0, len(records))
	for _, r := range records {
		lines = append(lines, tsv.FormatRecord(r, labels))
	}
	_, err = rc.TxPipelined(func(pipe *redis.Pipeline) error {
		pipe.Del(key)
		if len(lines) > 0 {
			pipe.RPush(key, lines...)
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "storing records on redis list %s", key)
	}
	return len(lines), nil
}

/*
ParseURL takes a URL of the form redis://[:password@]host[:port]/key and
returns the options to connect to the redis server and the key of the list.
*/
func ParseURL(rawURL string) (*redis.Options, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", errors.Wrapf(err, "parsing redis URL %q", rawURL)
	}
	if u.Scheme != "redis" {
		return nil, "", errors.Errorf("parsing redis URL %q: unexpected scheme %q", rawURL, u.Scheme)
	}
	opts := &redis.Options{Addr: u.Host}
	if u.Port() == "" {
		opts.Addr = u.Host + ":6379"
	}
	if u.User != nil {
		opts.Password, _ = u.User.Password()
	}
	return opts, strings.TrimPrefix(u.Path, "/"), nil
}
