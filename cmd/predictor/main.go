package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose       bool
	metadataInput string
	log           *logger
	closers       []func()
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "predictor",
		Short: "predictor is a tool to predict the party of voters",
		Long:  `A tool to grow decision trees from voting records, test them, and use them to predict the party of a voter`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		config.close()
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the party labels and the issue names of the dataset (defaults to labels D and R and numbered issues)")
	rootCmd.AddCommand(
		versionCmd(),
		predictCmd(config),
		growCmd(config),
		testCmd(config),
		splitCmd(config),
		setCmd(config),
		classifyCmd(config),
	)
	return rootCmd
}
