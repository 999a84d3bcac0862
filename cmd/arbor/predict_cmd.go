package main

import (
	"fmt"

	"github.com/pbanos/arbor/dataset"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeConfig
	treeInput string
	fallback  string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict VALUE...",
		Short: "Predict the label for a row",
		Long:  `Use the loaded tree to predict the label of the row made of the given feature values, in column order`,
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.Exit(1, err)
			}
			t, err := config.loadTree(&config.treeConfig, config.treeInput)
			if err != nil {
				config.Exit(2, err)
			}
			if len(args) < t.Schema.Width() {
				config.Exit(3, fmt.Errorf("tree needs %d feature values, got %d", t.Schema.Width(), len(args)))
			}
			row := dataset.Row(args)
			if config.fallback != "" {
				fmt.Println(t.ClassifyOr(row, config.fallback))
				return
			}
			label, err := t.Classify(row)
			if err != nil {
				config.Exit(4, err)
			}
			fmt.Println(label)
		},
	}
	config.treeConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON, or a redis:// URL to load it from (required)")
	cmd.PersistentFlags().StringVar(&(config.fallback), "fallback", "", "label to predict when the row takes a value the tree has no branch for (fails if unset)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}
