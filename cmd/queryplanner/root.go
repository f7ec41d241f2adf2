package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	supergraphFile string
	logLevel       string
)

var rootCmd = &cobra.Command{
	Use:   "queryplanner",
	Short: "queryplanner plans federated GraphQL operations against a composed supergraph",
}

// Execute runs the root command, exiting the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&supergraphFile, "supergraph", "./supergraph.graphql", "path to the composed supergraph SDL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	_ = viper.BindPFlag("supergraph", rootCmd.PersistentFlags().Lookup("supergraph"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}
