package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/dataset/csv"
	"github.com/pbanos/arbor/dataset/sqldataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	treejson "github.com/pbanos/arbor/tree/json"
	"github.com/pbanos/arbor/tree/redisstore"
	"github.com/spf13/cobra"
)

// sourceConfig holds the flags that locate a dataset.
type sourceConfig struct {
	header      bool
	table       string
	labelColumn string
}

func (sc *sourceConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&(sc.header), "header", false, "CSV input starts with a header naming the features and, last, the label column")
	cmd.PersistentFlags().StringVar(&(sc.table), "table", "rows", "name of the table holding the data on SQL inputs and outputs")
	cmd.PersistentFlags().StringVar(&(sc.labelColumn), "label", "label", "name of the label column on SQL inputs and outputs")
}

func isSQLSource(source string) bool {
	return strings.HasPrefix(source, "postgresql://") ||
		strings.HasPrefix(source, "postgres://") ||
		strings.HasPrefix(source, "sqlite3://") ||
		strings.HasSuffix(source, ".db")
}

// readRows reads the rows at the given source: a CSV file (STDIN if empty),
// an SQLite3 (.db) file or a PostgreSQL URL.
func (rcc *rootCmdConfig) readRows(sc *sourceConfig, source string, schema feature.Schema) ([]dataset.Row, error) {
	if isSQLSource(source) {
		return rcc.readSQLRows(sc, source, schema)
	}
	if source == "" {
		rcc.Logf("Reading rows from STDIN...")
	} else {
		rcc.Logf("Reading rows from %s...", source)
	}
	rows, err := csv.ReadRowsFromFilePath(source, schema, sc.header)
	if err != nil {
		return nil, err
	}
	rcc.Logf("Read %d rows", len(rows))
	return rows, nil
}

func (rcc *rootCmdConfig) readSQLRows(sc *sourceConfig, source string, schema feature.Schema) ([]dataset.Row, error) {
	rcc.Logf("Opening SQL database %s to read rows from table %s...", source, sc.table)
	db, driver, err := sqldataset.Open(source)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	t, err := sqldataset.NewTable(db, driver, sc.table, schema, sc.labelColumn)
	if err != nil {
		return nil, err
	}
	rows, err := t.Rows(rcc.Context())
	if err != nil {
		return nil, err
	}
	rcc.Logf("Read %d rows", len(rows))
	return rows, nil
}

// treeConfig holds the flags that locate a tree in a Redis store.
type treeConfig struct {
	name        string
	redisPrefix string
	cacheSize   int
}

func (tc *treeConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&(tc.name), "tree-name", "default", "name of the tree on Redis stores")
	cmd.PersistentFlags().StringVar(&(tc.redisPrefix), "redis-prefix", "arbor", "prefix for the keys of trees on Redis stores")
	cmd.PersistentFlags().IntVar(&(tc.cacheSize), "tree-cache", 0, "number of trees loaded from or saved on Redis stores to keep decoded in memory (none if 0)")
}

/*
treeStore returns the store for the trees at the given redis:// URL under the
prefix of the tree config. Stores are opened once and kept until closeStores
is called.
*/
func (rcc *rootCmdConfig) treeStore(tc *treeConfig, url string) (*redisstore.Store, error) {
	key := url + " " + tc.redisPrefix
	if s, ok := rcc.stores[key]; ok {
		return s, nil
	}
	s, err := redisstore.Open(url, tc.redisPrefix, tc.cacheSize)
	if err != nil {
		return nil, err
	}
	if rcc.stores == nil {
		rcc.stores = make(map[string]*redisstore.Store)
	}
	rcc.stores[key] = s
	return s, nil
}

func (rcc *rootCmdConfig) closeStores() {
	for key, s := range rcc.stores {
		if err := s.Close(); err != nil {
			rcc.logger().Warnf("closing Redis store: %v", err)
		}
		delete(rcc.stores, key)
	}
}

// writeTree writes the tree in JSON to the given destination: a file
// (STDOUT if empty) or a redis:// URL.
func (rcc *rootCmdConfig) writeTree(tc *treeConfig, destination string, t *tree.Tree) error {
	if strings.HasPrefix(destination, "redis://") {
		rcc.Logf("Saving tree %s on Redis store %s...", tc.name, destination)
		store, err := rcc.treeStore(tc, destination)
		if err != nil {
			return err
		}
		return store.Save(rcc.Context(), tc.name, t)
	}
	if destination == "" {
		return treejson.WriteTree(os.Stdout, t)
	}
	f, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer f.Close()
	return treejson.WriteTree(f, t)
}

// loadTree reads a tree in JSON from the given source: a file or a
// redis:// URL.
func (rcc *rootCmdConfig) loadTree(tc *treeConfig, source string) (*tree.Tree, error) {
	if strings.HasPrefix(source, "redis://") {
		rcc.Logf("Loading tree %s from Redis store %s...", tc.name, source)
		store, err := rcc.treeStore(tc, source)
		if err != nil {
			return nil, err
		}
		return store.Load(rcc.Context(), tc.name)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", source, err)
	}
	defer f.Close()
	t, err := treejson.ReadTree(f)
	if err != nil {
		err = fmt.Errorf("parsing tree in JSON from %s: %v", source, err)
	}
	return t, err
}
