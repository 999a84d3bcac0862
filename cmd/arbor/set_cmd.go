package main

import (
	"fmt"
	"os"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/dataset/csv"
	"github.com/pbanos/arbor/dataset/sqldataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/feature/yaml"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	sourceConfig
	dataInput     string
	metadataInput string
	output        string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Copy a set of data between sources",
		Long:  `Read a set of data from a CSV, SQLite3 or PostgreSQL source and write it as CSV or into an SQLite3 or PostgreSQL table`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.Exit(1, err)
			}
			md, err := yaml.ReadMetadataFromFile(config.metadataInput)
			if err != nil {
				config.Exit(2, err)
			}
			rows, err := config.readRows(&config.sourceConfig, config.dataInput, md.Schema)
			if err != nil {
				config.Exit(3, fmt.Errorf("reading set: %v", err))
			}
			if isSQLSource(config.output) {
				err = config.writeSQL(rows, md.Schema)
			} else {
				err = config.writeCSV(rows, md.Schema)
			}
			if err != nil {
				config.Exit(4, err)
			}
		},
	}
	config.sourceConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV or SQLite3 (.db) file, or a PostgreSQL DB connection URL with the data to copy (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and labels on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to an output CSV or SQLite3 (.db) file, or a PostgreSQL DB connection URL to copy the data to (defaults to STDOUT, as CSV)")
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}

func (scc *setCmdConfig) writeCSV(rows []dataset.Row, schema feature.Schema) error {
	if scc.output == "" {
		return csv.WriteRows(os.Stdout, rows, schema, scc.labelColumn)
	}
	scc.Logf("Writing %d rows to %s...", len(rows), scc.output)
	f, err := os.Create(scc.output)
	if err != nil {
		return err
	}
	defer f.Close()
	return csv.WriteRows(f, rows, schema, scc.labelColumn)
}

func (scc *setCmdConfig) writeSQL(rows []dataset.Row, schema feature.Schema) error {
	scc.Logf("Opening SQL database %s to write rows into table %s...", scc.output, scc.table)
	db, driver, err := sqldataset.Open(scc.output)
	if err != nil {
		return err
	}
	defer db.Close()
	t, err := sqldataset.NewTable(db, driver, scc.table, schema, scc.labelColumn)
	if err != nil {
		return err
	}
	if err = t.Create(scc.Context()); err != nil {
		return err
	}
	n, err := t.Insert(scc.Context(), rows)
	if err != nil {
		return err
	}
	scc.Logf("Inserted %d rows", n)
	return nil
}
