package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type showCmdConfig struct {
	*rootCmdConfig
	treeConfig
	treeInput string
	list      bool
}

func showCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &showCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a tree",
		Long:  `Print a tree as an indented outline of its splits, or list the names of the trees on a Redis store`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.Exit(1, err)
			}
			if config.list {
				store, err := config.treeStore(&config.treeConfig, config.treeInput)
				if err != nil {
					config.Exit(2, err)
				}
				names, err := store.Names(config.Context())
				if err != nil {
					config.Exit(3, err)
				}
				for _, n := range names {
					fmt.Println(n)
				}
				return
			}
			t, err := config.loadTree(&config.treeConfig, config.treeInput)
			if err != nil {
				config.Exit(2, err)
			}
			fmt.Printf("grown with %v, labels %v, features %v\n", t.Impurity, t.Labels, t.Schema.Names())
			fmt.Print(t)
		},
	}
	config.treeConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON, or a redis:// URL to load it from (required)")
	cmd.PersistentFlags().BoolVarP(&(config.list), "list", "l", false, "list the names of the trees on the redis:// URL given as tree instead")
	return cmd
}

func (scc *showCmdConfig) Validate() error {
	if scc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if scc.list && !strings.HasPrefix(scc.treeInput, "redis://") {
		return fmt.Errorf("list flag requires a redis:// URL as tree")
	}
	return nil
}
