package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type deleteCmdConfig struct {
	*rootCmdConfig
	treeConfig
	storeURL string
}

func deleteCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &deleteCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "delete [NAME...]",
		Short: "Delete trees from a Redis store",
		Long:  `Delete the trees with the given names, or the one named by the tree-name flag if none is given, from a Redis store`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.Exit(1, err)
			}
			store, err := config.treeStore(&config.treeConfig, config.storeURL)
			if err != nil {
				config.Exit(2, err)
			}
			for _, name := range config.names(args) {
				config.Logf("Deleting tree %s from Redis store %s...", name, config.storeURL)
				if err = store.Delete(config.Context(), name); err != nil {
					config.Exit(3, err)
				}
			}
		},
	}
	config.treeConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.storeURL), "tree", "t", "", "redis:// URL of the store to delete the trees from (required)")
	return cmd
}

func (dcc *deleteCmdConfig) Validate() error {
	if dcc.storeURL == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if !strings.HasPrefix(dcc.storeURL, "redis://") {
		return fmt.Errorf("tree flag must be a redis:// URL")
	}
	return nil
}

func (dcc *deleteCmdConfig) names(args []string) []string {
	if len(args) == 0 {
		return []string{dcc.name}
	}
	return args
}
