package main

import (
	"fmt"

	"github.com/pbanos/arbor/dataset"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	sourceConfig
	treeConfig
	treeInput string
	dataInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set, reporting its error rate`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.Exit(1, err)
			}
			t, err := config.loadTree(&config.treeConfig, config.treeInput)
			if err != nil {
				config.Exit(2, err)
			}
			rows, err := config.readRows(&config.sourceConfig, config.dataInput, t.Schema)
			if err != nil {
				config.Exit(3, fmt.Errorf("reading testing set: %v", err))
			}
			config.Logf("Testing tree against testing set with %d rows...", len(rows))
			result, err := t.Test(dataset.New(rows))
			if err != nil {
				config.Exit(4, fmt.Errorf("testing tree: %v", err))
			}
			config.Logf("Done")
			fmt.Printf("%f error rate, %d correct, %d incorrect, failed to classify %d rows\n", result.ErrorRate(), result.Correct, result.Incorrect, result.Unclassified)
		},
	}
	config.sourceConfig.addFlags(cmd)
	config.treeConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV or SQLite3 (.db) file, or a PostgreSQL DB connection URL with data to test the tree against (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON, or a redis:// URL to load it from (required)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}
