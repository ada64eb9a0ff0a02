/*
Package sqldataset provides an implementation of dataset.Dataset
that uses an SQL database as backend.

The dataset uses a single table, records, with one row per record:

	seq    an increasing integer giving the order of the records
	id     the identifier of the record
	party  "A", "B" or "?"
	votes  the votes of the record, one character per issue

Subsetting a dataset does not query the database, it adds a condition
on the votes column that is applied when records are counted or listed.
*/
package sqldataset
