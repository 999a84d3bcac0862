package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

const (
	// SQLite3 is the name of the driver for SQLite3 databases
	SQLite3 = "sqlite3"
	// PostgreSQL is the name of the driver for PostgreSQL databases
	PostgreSQL = "postgres"
	/*
		MaxRowInsertionsPerStatement is the maximum number
		of rows that are inserted with a single insert command
		by the Insert method of a Table. Inserting more will
		result in making more insertion commands
	*/
	MaxRowInsertionsPerStatement = 10
)

/*
Open takes a data source string and opens the database it points to: URLs
starting with postgres:// or postgresql:// are opened as PostgreSQL databases,
anything else as the path to an SQLite3 database file, with an optional
sqlite3:// prefix. It returns the database and the name of its driver, or an
error.
*/
func Open(source string) (*sql.DB, string, error) {
	driver := SQLite3
	if strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://") {
		driver = PostgreSQL
	} else {
		source = strings.TrimPrefix(source, "sqlite3://")
	}
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, "", fmt.Errorf("opening %s database: %v", driver, err)
	}
	return db, driver, nil
}

/*
Table represents a table on an SQL database holding dataset rows.
*/
type Table struct {
	db      *sql.DB
	driver  string
	name    string
	schema  feature.Schema
	label   string
	columns []string
}

/*
NewTable takes a database, the name of its driver, a table name, a schema and
the name of the label column and returns a Table, or an error if the driver is
not supported or some name cannot be used as an SQL identifier.
*/
func NewTable(db *sql.DB, driver, name string, schema feature.Schema, label string) (*Table, error) {
	if driver != SQLite3 && driver != PostgreSQL {
		return nil, fmt.Errorf("unsupported SQL driver %s", driver)
	}
	names := append([]string{name, label}, schema.Names()...)
	for _, n := range names {
		if err := validIdentifier(n); err != nil {
			return nil, err
		}
	}
	columns := make([]string, 0, len(schema)+1)
	for _, f := range schema {
		if f.Name() == label {
			return nil, fmt.Errorf("label column %s has the name of a feature", label)
		}
		columns = append(columns, quote(f.Name()))
	}
	columns = append(columns, quote(label))
	return &Table{db, driver, name, schema, label, columns}, nil
}

/*
Create creates the table on the database if it does not exist yet. It returns
an error if the creation fails.
*/
func (t *Table) Create(ctx context.Context) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (", quote(t.name)))
	for i, c := range t.columns {
		if i > 0 {
			createStmtBuf.WriteString(", ")
		}
		createStmtBuf.WriteString(fmt.Sprintf("%s TEXT NOT NULL", c))
	}
	createStmtBuf.WriteString(")")
	_, err := t.db.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("ensuring table %s exists: %v", t.name, err)
	}
	return nil
}

/*
Insert takes a slice of rows and inserts them in the table within a transaction.
It returns the number of inserted rows and an error, if any row is too short for
the schema or the insertion fails. In that case no row is inserted.
*/
func (t *Table) Insert(ctx context.Context, rows []dataset.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %v", err)
	}
	defer tx.Rollback()
	for chunkStart := 0; chunkStart < len(rows); chunkStart += MaxRowInsertionsPerStatement {
		chunkEnd := chunkStart + MaxRowInsertionsPerStatement
		if chunkEnd > len(rows) {
			chunkEnd = len(rows)
		}
		values := make([]interface{}, 0, (chunkEnd-chunkStart)*len(t.columns))
		for i, r := range rows[chunkStart:chunkEnd] {
			rv, err := t.rowValues(r)
			if err != nil {
				return 0, fmt.Errorf("inserting row %d: %v", chunkStart+i, err)
			}
			values = append(values, rv...)
		}
		_, err = tx.ExecContext(ctx, t.insertStatement(chunkEnd-chunkStart), values...)
		if err != nil {
			return 0, fmt.Errorf("inserting rows %d to %d: %v", chunkStart, chunkEnd-1, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing insertion: %v", err)
	}
	return len(rows), nil
}

/*
Rows returns the rows in the table. Each row holds the value of every feature
at the feature's column index and the label last. Columns at indices no feature
in the schema is on are left empty.
*/
func (t *Table) Rows(ctx context.Context) ([]dataset.Row, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.columns, ", "), quote(t.name))
	sqlRows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %v", t.name, err)
	}
	defer sqlRows.Close()
	width := t.schema.Width() + 1
	var rows []dataset.Row
	for sqlRows.Next() {
		values := make([]string, len(t.columns))
		dest := make([]interface{}, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err = sqlRows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row %d of table %s: %v", len(rows), t.name, err)
		}
		row := make(dataset.Row, width)
		for i, f := range t.schema {
			row[f.Index()] = values[i]
		}
		row[width-1] = values[len(values)-1]
		rows = append(rows, row)
	}
	if err = sqlRows.Err(); err != nil {
		return nil, fmt.Errorf("reading table %s: %v", t.name, err)
	}
	return rows, nil
}

func (t *Table) rowValues(r dataset.Row) ([]interface{}, error) {
	values := make([]interface{}, 0, len(t.columns))
	for _, f := range t.schema {
		v, err := r.ValueFor(f)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if len(r) <= t.schema.Width() {
		return nil, fmt.Errorf("%w: no label", dataset.ErrMissingValue)
	}
	return append(values, r.Label()), nil
}

func (t *Table) insertStatement(rowCount int) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES ", quote(t.name), strings.Join(t.columns, ", ")))
	p := 1
	for i := 0; i < rowCount; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for j := range t.columns {
			if j > 0 {
				buf.WriteString(", ")
			}
			if t.driver == PostgreSQL {
				buf.WriteString(fmt.Sprintf("$%d", p))
			} else {
				buf.WriteString("?")
			}
			p++
		}
		buf.WriteString(")")
	}
	return buf.String()
}

func validIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("empty SQL identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return nil
}

func quote(name string) string {
	return fmt.Sprintf(`"%s"`, name)
}
