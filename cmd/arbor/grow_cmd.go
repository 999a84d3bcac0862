package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature/yaml"
	"github.com/pbanos/arbor/impurity"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	sourceConfig
	treeConfig
	dataInput          string
	metadataInput      string
	output             string
	impurity           string
	maxDepth           int
	pruneStrategy      string
	cpuIntensiveSet    bool
	memoryIntensiveSet bool
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree with ID3 from a set of data to predict its label.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.Exit(1, err)
			}
			kind, err := impurity.ParseKind(config.impurity)
			if err != nil {
				config.Exit(1, err)
			}
			pruner, err := pruningStrategy(config.pruneStrategy)
			if err != nil {
				config.Exit(1, err)
			}
			md, err := yaml.ReadMetadataFromFile(config.metadataInput)
			if err != nil {
				config.Exit(2, err)
			}
			rows, err := config.readRows(&config.sourceConfig, config.dataInput, md.Schema)
			if err != nil {
				config.Exit(3, fmt.Errorf("reading training set: %v", err))
			}
			p, err := arbor.New(md.Schema, md.Labels, kind, config.maxDepth, pruner)
			if err != nil {
				config.Exit(4, err)
			}
			config.Logf("Growing tree from a set with %d rows and %d features with %v...", len(rows), len(md.Schema), kind)
			t, err := p.Grow(config.dataset(rows))
			if err != nil {
				config.Exit(5, fmt.Errorf("growing the tree: %v", err))
			}
			config.Logf("Done, tree has depth %d", t.Depth())
			config.Logf("\n%v", t)
			err = config.writeTree(&config.treeConfig, config.output, t)
			if err != nil {
				config.Exit(6, err)
			}
		},
	}
	config.sourceConfig.addFlags(cmd)
	config.treeConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV or SQLite3 (.db) file, or a PostgreSQL DB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and labels on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format, or a redis:// URL to store it on (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.impurity), "impurity", "entropy", "impurity measure to reduce when splitting: entropy, majority-error (me) or gini-index (gi)")
	cmd.PersistentFlags().IntVarP(&(config.maxDepth), "max-depth", "d", arbor.Unbounded, "maximum depth of the tree, negative for no limit")
	cmd.PersistentFlags().StringVarP(&(config.pruneStrategy), "prune", "p", "default", "pruning strategy to apply, the following are valid: default, minimum-information-gain:[VALUE], none")
	cmd.PersistentFlags().BoolVar(&(config.memoryIntensiveSet), "memory-intensive", false, "force the use of memory-intensive subsetting to decrease time at the cost of increasing memory use")
	cmd.PersistentFlags().BoolVar(&(config.cpuIntensiveSet), "cpu-intensive", false, "force the use of cpu-intensive subsetting to decrease memory use at the cost of increasing time")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.cpuIntensiveSet && gcc.memoryIntensiveSet {
		return fmt.Errorf("cannot set both memory-intensive and cpu-intensive flags at the same time")
	}
	return nil
}

func (gcc *growCmdConfig) dataset(rows []dataset.Row) dataset.Dataset {
	if gcc.memoryIntensiveSet {
		return dataset.NewMemoryIntensive(rows)
	}
	if gcc.cpuIntensiveSet {
		return dataset.NewCPUIntensive(rows)
	}
	return dataset.New(rows)
}

func pruningStrategy(ps string) (arbor.Pruner, error) {
	parsedPS := strings.Split(ps, ":")
	ps = parsedPS[0]
	psParams := parsedPS[1:]
	switch ps {
	case "default":
		return arbor.DefaultPruner(), nil
	case "none":
		return arbor.NoPruner(), nil
	case "minimum-information-gain":
		if len(psParams) != 1 {
			return nil, fmt.Errorf("minimum-information-gain pruning strategy takes a single parameter")
		}
		minimum, err := strconv.ParseFloat(psParams[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing minimum-information-gain parameter: %v", err)
		}
		return arbor.FixedInformationGainPruner(minimum), nil
	}
	return nil, fmt.Errorf("unknown pruning strategy %s", ps)
}
