package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/dataset/csv"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/feature/yaml"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*rootCmdConfig
	sourceConfig
	dataInput        string
	metadataInput    string
	output           string
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, to grow trees with the first and test them with the second`,
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
			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			kept, split := splitRows(rows, config.splitProbability, rand.New(rand.NewSource(seed)))
			config.Logf("Input set with %d rows was split into sets with %d and %d rows", len(rows), len(kept), len(split))
			err = config.writeCSV(config.output, kept, md.Schema)
			if err != nil {
				config.Exit(4, err)
			}
			err = config.writeCSV(config.splitOutput, split, md.Schema)
			if err != nil {
				config.Exit(5, err)
			}
		},
	}
	config.sourceConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV or SQLite3 (.db) file, or a PostgreSQL DB connection URL with the set to split (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and labels on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a CSV file to dump the output set (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a CSV file to dump the split set (required)")
	cmd.PersistentFlags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a row of the set will be assigned to the split set")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random assignment of rows, for reproducible splits (defaults to the current time)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}

func (scc *splitCmdConfig) writeCSV(path string, rows []dataset.Row, schema feature.Schema) error {
	if path == "" {
		return csv.WriteRows(os.Stdout, rows, schema, scc.labelColumn)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return csv.WriteRows(f, rows, schema, scc.labelColumn)
}

// splitRows assigns each row to the split set with the given percent
// probability, keeping the original order within each set.
func splitRows(rows []dataset.Row, probability int, r *rand.Rand) ([]dataset.Row, []dataset.Row) {
	var kept, split []dataset.Row
	for _, row := range rows {
		if 100*r.Float32() > float32(probability) {
			kept = append(kept, row)
		} else {
			split = append(split, row)
		}
	}
	return kept, split
}
