/*
Package mongodataset provides a implementation of dataset.Dataset
that uses a MongoDB database as backend.

Records are stored as documents of a records collection on the default
database of the session:

	{"seq": 3, "id": "HR3", "party": "A", "votes": ["+", "-", "."]}
*/
package mongodataset

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
Dataset is a dataset.Dataset to which records can be added
and from which records can be sequentially read
*/
type Dataset interface {
	dataset.Dataset
	Write(context.Context, []dataset.Record) (int, error)
	Read(context.Context) (<-chan dataset.Record, <-chan error)
}

type mongodataset struct {
	session    *mgo.Session
	issues     int
	criteria   []feature.Criterion
	mongoQuery bson.M
	voteCount  *dataset.VoteCount
}

type recordDoc struct {
	Seq   int      `bson:"seq"`
	ID    string   `bson:"id"`
	Party string   `bson:"party"`
	Votes []string `bson:"votes"`
}

const (
	recordsCollectionName = "records"
)

/*
Open takes a MongoDB database session and returns a Dataset that works on
the default database for that session or an error. The number of issues of
the dataset is that of its first record, unless the collection is empty, in
which case the given issues are used. Records with votes for a different
number of issues make it return an error wrapping dataset.ErrRaggedRecords.
*/
func Open(ctx context.Context, session *mgo.Session, issues int) (Dataset, error) {
	mds := &mongodataset{session: session, issues: issues}
	err := mds.ensureIndexes()
	if err != nil {
		return nil, err
	}
	var first recordDoc
	err = mds.recordsCollection().Find(nil).Sort("seq").One(&first)
	if err == mgo.ErrNotFound {
		return mds, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "retrieving first record")
	}
	mds.issues = len(first.Votes)
	ragged, err := mds.recordsCollection().Find(raggedQuery(mds.issues)).Count()
	if err != nil {
		return nil, errors.Wrap(err, "counting ragged records")
	}
	if ragged > 0 {
		return nil, errors.Wrapf(dataset.ErrRaggedRecords, "%d records do not have votes for %d issues", ragged, mds.issues)
	}
	return mds, nil
}

func raggedQuery(issues int) bson.M {
	return bson.M{"votes": bson.M{"$not": bson.M{"$size": issues}}}
}

func (mds *mongodataset) Issues(context.Context) (int, error) {
	return mds.issues, nil
}

func (mds *mongodataset) VoteCount(ctx context.Context) (dataset.VoteCount, error) {
	if mds.voteCount != nil {
		return *mds.voteCount, nil
	}
	iter := mds.recordsCollection().Pipe([]bson.M{{"$match": mds.query()}, {"$group": bson.M{"_id": "$party", "count": bson.M{"$sum": 1}}}}).Iter()
	defer iter.Close()
	var doc bson.M
	var vc dataset.VoteCount
	for iter.Next(&doc) {
		count, ok := doc["count"].(int)
		if !ok {
			return dataset.VoteCount{}, fmt.Errorf("counting parties: mongo aggregation query returned a %T instead of an int as count", doc["count"])
		}
		party, _ := doc["_id"].(string)
		switch feature.ParseParty(party) {
		case feature.PartyA:
			vc.A += count
		case feature.PartyB:
			vc.B += count
		}
		vc.Total += count
	}
	if err := iter.Err(); err != nil {
		return dataset.VoteCount{}, err
	}
	mds.voteCount = &vc
	return vc, nil
}

func (mds *mongodataset) Entropy(ctx context.Context) (float64, error) {
	vc, err := mds.VoteCount(ctx)
	if err != nil {
		return 0, err
	}
	return vc.Entropy(), nil
}

func (mds *mongodataset) SubsetWith(ctx context.Context, c feature.Criterion) (dataset.Dataset, error) {
	if c.Issue() < 0 || c.Issue() >= mds.issues {
		return nil, errors.Wrapf(dataset.ErrIssueOutOfRange, "subsetting on issue %d with %d issues", c.Issue()+1, mds.issues)
	}
	if _, ok := c.(feature.VoteCriterion); !ok {
		return nil, errors.Errorf("cannot translate criterion of type %T into a mongo query", c)
	}
	return &mongodataset{
		session:  mds.session,
		issues:   mds.issues,
		criteria: append(append([]feature.Criterion{}, mds.criteria...), c),
	}, nil
}

func (mds *mongodataset) Records(ctx context.Context) ([]dataset.Record, error) {
	var records []dataset.Record
	recordChan, errs := mds.Read(ctx)
	for r := range recordChan {
		records = append(records, r)
	}
	err := <-errs
	return records, err
}

func (mds *mongodataset) Count(ctx context.Context) (int, error) {
	return mds.recordsCollection().Find(mds.query()).Count()
}

func (mds *mongodataset) Criteria(context.Context) ([]feature.Criterion, error) {
	return mds.criteria, nil
}

func (mds *mongodataset) Write(ctx context.Context, records []dataset.Record) (int, error) {
	if len(mds.criteria) > 0 {
		return 0, errors.New("cannot write records on a subset")
	}
	seq := 0
	var last recordDoc
	err := mds.recordsCollection().Find(nil).Sort("-seq").One(&last)
	if err != nil && err != mgo.ErrNotFound {
		return 0, errors.Wrap(err, "retrieving last record")
	}
	if err == nil {
		seq = last.Seq
	}
	docs := make([]interface{}, 0, len(records))
	for i, r := range records {
		if r.Len() != mds.issues {
			return 0, errors.Wrapf(dataset.ErrRaggedRecords, "record #%d (%s) has %d issues, expected %d", i+1, r.ID(), r.Len(), mds.issues)
		}
		votes := make([]string, r.Len())
		for j, v := range r.Votes() {
			votes[j] = v.String()
		}
		seq++
		docs = append(docs, &recordDoc{Seq: seq, ID: r.ID(), Party: r.Party().String(), Votes: votes})
	}
	err = mds.recordsCollection().Insert(docs...)
	if err != nil {
		return 0, err
	}
	mds.voteCount = nil
	return len(records), nil
}

func (mds *mongodataset) Read(ctx context.Context) (<-chan dataset.Record, <-chan error) {
	records := make(chan dataset.Record)
	errs := make(chan error, 1)
	go func() {
		defer close(records)
		defer close(errs)
		var doc recordDoc
		iter := mds.recordsCollection().Find(mds.query()).Sort("seq").Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			votes := make([]feature.Vote, len(doc.Votes))
			for i, v := range doc.Votes {
				if len(v) == 1 {
					votes[i] = feature.Vote(v[0])
				}
			}
			r := dataset.NewRecord(doc.ID, feature.ParseParty(doc.Party), votes)
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case records <- r:
			}
		}
		if err := iter.Err(); err != nil {
			errs <- err
		}
	}()
	return records, errs
}

func (mds *mongodataset) ensureIndexes() error {
	for _, key := range []string{"seq", "party"} {
		index := mgo.Index{
			Key:        []string{key},
			Background: true,
		}
		err := mds.recordsCollection().EnsureIndex(index)
		if err != nil {
			return errors.Wrapf(err, "ensuring index on %s", key)
		}
	}
	return nil
}

func (mds *mongodataset) recordsCollection() *mgo.Collection {
	return mds.session.DB("").C(recordsCollectionName)
}

func (mds *mongodataset) query() bson.M {
	if mds.mongoQuery == nil {
		mds.mongoQuery = make(bson.M)
		for _, c := range mds.criteria {
			if vc, ok := c.(feature.VoteCriterion); ok {
				mds.mongoQuery[fmt.Sprintf("votes.%d", vc.Issue())] = vc.Vote().String()
			}
		}
	}
	return mds.mongoQuery
}
