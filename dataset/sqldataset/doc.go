/*
Package sqldataset provides the means to read dataset rows from, and
write them onto, a table in an SQL database. SQLite3 and PostgreSQL
databases are supported.

A table holds a TEXT column for each feature of a schema, named after the
feature, plus a TEXT column for the label. Each table row is a dataset row.
*/
package sqldataset
