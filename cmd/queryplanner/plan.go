package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphql-hive/query-planner-go/pkg/planner"
	"github.com/graphql-hive/query-planner-go/pkg/supergraph"
	"github.com/graphql-hive/query-planner-go/pkg/walker"
)

var printOperationPath bool

var planCmd = &cobra.Command{
	Use:     "plan [operation-file]",
	Short:   "plan prints the query plan for a field-step sequence read from operation-file",
	Example: "queryplanner plan --supergraph supergraph.graphql steps.txt",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sdl, err := os.ReadFile(supergraphFile)
		if err != nil {
			return fmt.Errorf("read supergraph: %w", err)
		}

		operationType, steps, err := readSteps(args[0])
		if err != nil {
			return fmt.Errorf("read operation file: %w", err)
		}

		logger, sync, err := newLogger(logLevel)
		if err != nil {
			return err
		}
		defer sync()

		p, err := planner.New(string(sdl), planner.Configuration{
			Logger: logger,
			Debug:  planner.DebugConfiguration{PrintOperationPath: printOperationPath},
		})
		if err != nil {
			return err
		}

		plan, err := p.Plan(operationType, steps)
		if err != nil {
			return err
		}
		if plan == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "no plan: no path satisfies the requested steps")
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), plan.Pretty())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolVar(&printOperationPath, "print-path", false, "log the chosen operation path as DOT at debug level (shown only with --log-level debug) before printing the plan")
}

// readSteps parses the CLI's operation-file format: a first
// non-blank line naming the operation kind ("query", "mutation" or
// "subscription"), followed by one field name per line.
func readSteps(path string) (supergraph.OperationType, []walker.FieldStep, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	var operationType supergraph.OperationType
	var haveKind bool
	var steps []walker.FieldStep

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !haveKind {
			kind, err := parseOperationType(line)
			if err != nil {
				return 0, nil, err
			}
			operationType = kind
			haveKind = true
			continue
		}
		steps = append(steps, walker.FieldStep{Name: line})
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, err
	}
	if !haveKind {
		return 0, nil, fmt.Errorf("operation file must start with query, mutation or subscription")
	}
	return operationType, steps, nil
}

func parseOperationType(s string) (supergraph.OperationType, error) {
	switch s {
	case "query":
		return supergraph.OperationQuery, nil
	case "mutation":
		return supergraph.OperationMutation, nil
	case "subscription":
		return supergraph.OperationSubscription, nil
	default:
		return 0, fmt.Errorf("unknown operation type %q", s)
	}
}
