package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature/yaml"
	"github.com/pbanos/arbor/impurity"
	"github.com/pbanos/arbor/tree"
	"github.com/spf13/cobra"
)

type sweepCmdConfig struct {
	*rootCmdConfig
	sourceConfig
	treeConfig
	dataInput     string
	testInput     string
	metadataInput string
	output        string
	impurities    []string
	maxDepth      int
}

type sweepResult struct {
	kind      impurity.Kind
	depth     int
	treeDepth int
	train     *errorSummary
	test      *errorSummary
}

type errorSummary struct {
	errorRate    float64
	unclassified int
}

func sweepCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &sweepCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Report error rates of trees grown with every impurity and depth",
		Long:  `Grow a tree for every combination of impurity measure and maximum depth from 1 up to a bound, and report their error rates on the training set and, if given, a testing set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.Exit(1, err)
			}
			kinds, err := config.kinds()
			if err != nil {
				config.Exit(1, err)
			}
			md, err := yaml.ReadMetadataFromFile(config.metadataInput)
			if err != nil {
				config.Exit(2, err)
			}
			trainRows, err := config.readRows(&config.sourceConfig, config.dataInput, md.Schema)
			if err != nil {
				config.Exit(3, fmt.Errorf("reading training set: %v", err))
			}
			var testRows []dataset.Row
			if config.testInput != "" {
				testRows, err = config.readRows(&config.sourceConfig, config.testInput, md.Schema)
				if err != nil {
					config.Exit(3, fmt.Errorf("reading testing set: %v", err))
				}
			}
			maxDepth := config.maxDepth
			if maxDepth < 1 {
				maxDepth = len(md.Schema)
			}
			trainSet := dataset.New(trainRows)
			var results []*sweepResult
			for _, k := range kinds {
				for depth := 1; depth <= maxDepth; depth++ {
					config.Logf("Growing tree with %v and maximum depth %d...", k, depth)
					p, err := arbor.New(md.Schema, md.Labels, k, depth, nil)
					if err != nil {
						config.Exit(4, err)
					}
					t, err := p.Grow(trainSet)
					if err != nil {
						config.Exit(5, fmt.Errorf("growing the tree: %v", err))
					}
					if config.output != "" {
						t, err = config.storeAndReload(k, depth, t)
						if err != nil {
							config.Exit(6, err)
						}
					}
					r := &sweepResult{kind: k, depth: depth, treeDepth: t.Depth()}
					tr, err := t.Test(trainSet)
					if err != nil {
						config.Exit(7, fmt.Errorf("testing tree against training set: %v", err))
					}
					r.train = &errorSummary{tr.ErrorRate(), tr.Unclassified}
					if testRows != nil {
						tr, err = t.Test(dataset.New(testRows))
						if err != nil {
							config.Exit(7, fmt.Errorf("testing tree against testing set: %v", err))
						}
						r.test = &errorSummary{tr.ErrorRate(), tr.Unclassified}
					}
					results = append(results, r)
				}
			}
			printSweep(cmd.OutOrStdout(), results, testRows != nil)
		},
	}
	config.sourceConfig.addFlags(cmd)
	config.treeConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "redis:// URL of a store to save every tree on, named after the tree-name flag, impurity and maximum depth, and test them as stored")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV or SQLite3 (.db) file, or a PostgreSQL DB connection URL with data to grow the trees (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVar(&(config.testInput), "test-input", "", "path to an input CSV or SQLite3 (.db) file, or a PostgreSQL DB connection URL with data to test the trees against")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and labels on the input (required)")
	cmd.PersistentFlags().StringSliceVar(&(config.impurities), "impurity", nil, "impurity measures to grow trees with (defaults to all of them)")
	cmd.PersistentFlags().IntVarP(&(config.maxDepth), "max-depth", "d", 0, "greatest maximum depth to grow trees with (defaults to the number of features)")
	return cmd
}

func (scc *sweepCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.testInput != "" && scc.dataInput == "" {
		return fmt.Errorf("input flag is required when a testing set is given")
	}
	if scc.output != "" && !strings.HasPrefix(scc.output, "redis://") {
		return fmt.Errorf("output flag must be a redis:// URL")
	}
	return nil
}

// storeAndReload saves the tree grown with the given impurity and maximum
// depth on the output store and returns it as loaded back from it.
func (scc *sweepCmdConfig) storeAndReload(k impurity.Kind, depth int, t *tree.Tree) (*tree.Tree, error) {
	named := scc.treeConfig
	named.name = fmt.Sprintf("%s-%v-%d", scc.name, k, depth)
	if err := scc.writeTree(&named, scc.output, t); err != nil {
		return nil, err
	}
	return scc.loadTree(&named, scc.output)
}

func (scc *sweepCmdConfig) kinds() ([]impurity.Kind, error) {
	if len(scc.impurities) == 0 {
		return impurity.Kinds(), nil
	}
	var kinds []impurity.Kind
	for _, name := range scc.impurities {
		k, err := impurity.ParseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func printSweep(out io.Writer, results []*sweepResult, withTest bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := "IMPURITY\tMAX DEPTH\tDEPTH\tTRAIN ERROR"
	if withTest {
		header += "\tTEST ERROR\tUNCLASSIFIED"
	}
	fmt.Fprintln(w, header)
	for _, r := range results {
		line := fmt.Sprintf("%v\t%d\t%d\t%.4f", r.kind, r.depth, r.treeDepth, r.train.errorRate)
		if r.test != nil {
			line += fmt.Sprintf("\t%.4f\t%d", r.test.errorRate, r.test.unclassified)
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
}
