package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pbanos/arbor/tree/redisstore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	logFile    string
	log        *zap.SugaredLogger
	ctx        context.Context
	cancelFunc context.CancelFunc
	stores     map[string]*redisstore.Store
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "arbor is a tool to grow decision trees with ID3",
		Long:  `A tool to grow decision trees from categorical data with the ID3 algorithm, test them, and use them to classify rows`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		config.cancelOnInterrupt()
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		config.closeStores()
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress information")
	rootCmd.PersistentFlags().StringVar(&(config.logFile), "log-file", "", "path to a file to write logs to, rotated as it grows (defaults to STDERR)")
	rootCmd.AddCommand(versionCmd(), growCmd(config), testCmd(config), predictCmd(config), sweepCmd(config), setCmd(config), splitCmd(config), showCmd(config), deleteCmd(config))
	return rootCmd
}

func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *rootCmdConfig) ContextCancelFunc() context.CancelFunc {
	rcc.setContextAndCancelFunc()
	return rcc.cancelFunc
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = context.WithCancel(context.Background())
	}
}

// cancelOnInterrupt cancels the context of the command on the first interrupt
// signal, aborting pending database and redis operations.
func (rcc *rootCmdConfig) cancelOnInterrupt() {
	cancel := rcc.ContextCancelFunc()
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		rcc.Logf("Interrupted, cancelling...")
		cancel()
	}()
}
