/*
Package csv provides methods to read dataset rows from CSV streams and to write
them back.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

/*
ReadRows takes an io.Reader for a CSV stream, a schema and a header boolean and
returns the rows parsed from the reader or an error.

Without header, every record is taken as a row as is: its values are expected
at the column indices of the schema's features and the label in the last
column. All records must have the same number of fields.

With header, the first record is expected to consist of the names of the
features in the schema and, last, the name of the label column. Every following
record is rearranged so each feature's value lands on the feature's column
index and the label comes last.
*/
func ReadRows(reader io.Reader, schema feature.Schema, header bool) ([]dataset.Row, error) {
	var rows []dataset.Row
	err := ReadRowsByRow(reader, schema, header, func(_ int, r dataset.Row) (bool, error) {
		rows = append(rows, r)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

/*
ReadRowsByRow takes the same parameters as ReadRows plus a lambda function on
an integer and a dataset.Row that returns a boolean value. It parses the rows
from the reader and for each it calls the lambda function with the row and its
index as parameters. If the lambda function returns true, it will continue
processing the next row, otherwise it will stop. An error is returned if
something goes wrong when reading the stream or parsing a row.
*/
func ReadRowsByRow(reader io.Reader, schema feature.Schema, header bool, lambda func(int, dataset.Row) (bool, error)) error {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	var columns []int
	l := 1
	if header {
		h, err := r.Read()
		if err != nil {
			return fmt.Errorf("reading header: %v", err)
		}
		columns, err = parseColumnsFromCSVHeader(h, schema)
		if err != nil {
			return err
		}
		l++
	}
	for i := 0; ; i, l = i+1, l+1 {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading line %d: %v", l, err)
		}
		row := dataset.Row(record)
		if columns != nil {
			row = arrangeRecord(record, columns)
		}
		ok, err := lambda(i, row)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadRowsFromFilePath takes a filepath string, a schema and a header boolean,
opens the file to which the filepath points to and uses ReadRows to return the
rows read from it or an error. If the filepath is "" os.Stdin is read instead.
It will return an error if the given filepath cannot be opened for reading.
*/
func ReadRowsFromFilePath(filepath string, schema feature.Schema, header bool) ([]dataset.Row, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("opening CSV file: %v", err)
		}
		defer f.Close()
	}
	rows, err := ReadRows(f, schema, header)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return rows, err
}

/*
WriteRows takes a writer, a slice of rows, a schema and a label column name and
dumps the rows in CSV format onto the writer, preceded by a header with the
names of the features on their column and the label column name last. Columns
no feature in the schema is on are named after their index. It returns an error
if something went wrong when writing to the writer.
*/
func WriteRows(writer io.Writer, rows []dataset.Row, schema feature.Schema, label string) error {
	w := csv.NewWriter(writer)
	width := schema.Width()
	if len(rows) > 0 && len(rows[0])-1 > width {
		width = len(rows[0]) - 1
	}
	h := make([]string, width+1)
	for i := range h[:width] {
		h[i] = fmt.Sprintf("column%d", i)
	}
	for _, f := range schema {
		h[f.Index()] = f.Name()
	}
	h[width] = label
	if err := w.Write(h); err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}
	for i, r := range rows {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("writing CSV row %d: %v", i+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

// parseColumnsFromCSVHeader returns, for each position on a row, the index
// of the record field holding its value. The label comes last.
func parseColumnsFromCSVHeader(header []string, schema feature.Schema) ([]int, error) {
	if len(header) < 2 {
		return nil, fmt.Errorf("parsing header: expected feature and label columns, got %d columns", len(header))
	}
	columns := make([]int, schema.Width()+1)
	for i := range columns {
		columns[i] = -1
	}
	for i, name := range header[:len(header)-1] {
		f, ok := schema.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("parsing header: reference to unknown feature %s", name)
		}
		columns[f.Index()] = i
	}
	for _, f := range schema {
		if columns[f.Index()] < 0 {
			return nil, fmt.Errorf("parsing header: missing column for feature %s", f.Name())
		}
	}
	columns[len(columns)-1] = len(header) - 1
	return columns, nil
}

func arrangeRecord(record []string, columns []int) dataset.Row {
	row := make(dataset.Row, len(columns))
	for i, c := range columns {
		if c >= 0 {
			row[i] = record[c]
		}
	}
	return row
}
