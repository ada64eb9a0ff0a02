/*
Package tsv reads and writes datasets of voting records in the plain text
format the tool was built for: one record per line with three
whitespace-separated fields, its identifier, its party label and a single
token with one character per issue.

	HR1 D ++-.+
	HR2 R --+.-
*/
package tsv

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
ErrMalformedLine is returned when a non-blank line holds fewer than three
fields.
*/
var ErrMalformedLine = errors.New("malformed line")

/*
Writer is an interface for a destination to which records
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given records and will return
	// the actually written number of records and an error (if not all
	// records could be written)
	Write(context.Context, []dataset.Record) (int, error)
	// Count returns the total number of records written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type tsvWriter struct {
	count  int
	labels feature.Labels
	w      *bufio.Writer
}

/*
ReadDataset takes an io.Reader and the labels to map party tokens with and
returns a dataset.Dataset with the records parsed from the reader, or an
error. Records with votes for differing numbers of issues produce an error
wrapping dataset.ErrRaggedRecords.
*/
func ReadDataset(reader io.Reader, labels feature.Labels) (dataset.Dataset, error) {
	records := []dataset.Record{}
	err := ReadDatasetByRecord(reader, labels, func(_ int, r dataset.Record) (bool, error) {
		records = append(records, r)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(records)
}

/*
ReadDatasetByRecord takes an io.Reader, the labels to map party tokens with
and a lambda function on an integer and a dataset.Record that returns a
boolean value. It parses the records from the reader and for each it calls
the lambda function with the record and its index as parameters. If the
lambda function returns true, it will continue processing the next record,
otherwise it will stop. An error is returned if something goes wrong when
reading or parsing a line.

Blank lines are skipped. Fields beyond the third are ignored.
*/
func ReadDatasetByRecord(reader io.Reader, labels feature.Labels, lambda func(int, dataset.Record) (bool, error)) error {
	scanner := bufio.NewScanner(reader)
	for l, i := 1, 0; scanner.Scan(); l++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return errors.Wrapf(ErrMalformedLine, "line %d has %d fields, expected 3", l, len(fields))
		}
		r := dataset.NewRecord(fields[0], labels.Party(fields[1]), feature.ParseVotes(fields[2]))
		ok, err := lambda(i, r)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		i++
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading records")
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string and the labels to map party
tokens with, opens the file to which the filepath points to and uses
ReadDataset to return a dataset.Dataset or an error read from it. If the
filepath is "" os.Stdin is used instead.
*/
func ReadDatasetFromFilePath(filepath string, labels feature.Labels) (dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, errors.Wrap(err, "opening dataset")
		}
		defer f.Close()
	}
	ds, err := ReadDataset(f, labels)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing file %s", filepath)
	}
	return ds, nil
}

/*
NewWriter takes an io.Writer and the labels to render parties with and
returns a Writer that will write any records on the io.Writer.
*/
func NewWriter(writer io.Writer, labels feature.Labels) Writer {
	return &tsvWriter{labels: labels, w: bufio.NewWriter(writer)}
}

/*
WriteDataset takes a writer, a dataset.Dataset and the labels to render
parties with and dumps the dataset to the writer. It returns an error if
something went wrong when retrieving the records or writing them.
*/
func WriteDataset(ctx context.Context, writer io.Writer, ds dataset.Dataset, labels feature.Labels) error {
	tw := NewWriter(writer, labels)
	records, err := ds.Records(ctx)
	if err != nil {
		return err
	}
	_, err = tw.Write(ctx, records)
	if err != nil {
		return err
	}
	return tw.Flush()
}

/*
FormatRecord renders a record as a line of the format, without the
trailing newline.
*/
func FormatRecord(r dataset.Record, labels feature.Labels) string {
	return fmt.Sprintf("%s\t%s\t%s", r.ID(), labels.Token(r.Party()), feature.FormatVotes(r.Votes()))
}

func (tw *tsvWriter) Count() int {
	return tw.count
}

func (tw *tsvWriter) Write(ctx context.Context, records []dataset.Record) (int, error) {
	for n, r := range records {
		if _, err := fmt.Fprintln(tw.w, FormatRecord(r, tw.labels)); err != nil {
			return n, errors.Wrapf(err, "writing record %d", tw.count+1)
		}
		tw.count++
	}
	return len(records), nil
}

func (tw *tsvWriter) Flush() error {
	return tw.w.Flush()
}
