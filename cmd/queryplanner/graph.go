package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphql-hive/query-planner-go/pkg/planner"
)

var graphAsLink bool

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "graph dumps the merged query graph built from the supergraph as Graphviz DOT",
	RunE: func(cmd *cobra.Command, args []string) error {
		sdl, err := os.ReadFile(supergraphFile)
		if err != nil {
			return fmt.Errorf("read supergraph: %w", err)
		}

		p, err := planner.New(string(sdl), planner.Configuration{})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), p.Graph().Print(graphAsLink))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().BoolVar(&graphAsLink, "link", false, "wrap the DOT source as a URL-encoded edotor.net link")
}
