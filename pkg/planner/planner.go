// Package planner orchestrates the supergraph parser, query graph
// builder, walker and plan synthesizer behind one Plan call, and owns
// the ambient logging/error-reporting concerns none of those packages
// need to know about individually.
package planner

import (
	"github.com/google/uuid"
	"github.com/jensneuse/abstractlogger"
	"github.com/pkg/errors"

	"github.com/graphql-hive/query-planner-go/pkg/planner/planerr"
	"github.com/graphql-hive/query-planner-go/pkg/querygraph"
	"github.com/graphql-hive/query-planner-go/pkg/queryplan"
	"github.com/graphql-hive/query-planner-go/pkg/supergraph"
	"github.com/graphql-hive/query-planner-go/pkg/walker"
)

// Configuration is a logger sink plus debug toggles, nothing
// resembling a loaded config file (the planner has no runtime
// environment of its own).
type Configuration struct {
	Logger abstractlogger.Logger
	Debug  DebugConfiguration
}

// DebugConfiguration toggles diagnostic output. PrintQueryGraph and
// PrintOperationPath route through Graph.Print/OperationPath.Print.
type DebugConfiguration struct {
	PrintQueryGraph    bool
	PrintOperationPath bool
}

// Planner wraps one built Graph and is safe to reuse (and share
// across goroutines) for many Plan calls against the same supergraph.
type Planner struct {
	config Configuration
	graph  *querygraph.Graph
}

// New parses sdl, builds its query graph, and returns a Planner ready
// to answer Plan calls. A malformed supergraph is a fatal error here,
// not deferred to the first Plan call.
func New(sdl string, config Configuration) (*Planner, error) {
	if config.Logger == nil {
		config.Logger = abstractlogger.NoopLogger
	}

	sg, err := supergraph.Parse(sdl)
	if err != nil {
		return nil, errors.Wrap(err, "parse supergraph")
	}

	graph, err := querygraph.Build(sg)
	if err != nil {
		return nil, errors.Wrap(err, "build query graph")
	}

	if config.Debug.PrintQueryGraph {
		config.Logger.Debug("query graph built", abstractlogger.String("dot", graph.Print(false)))
	}

	return &Planner{config: config, graph: graph}, nil
}

// Plan walks steps from operationType's root and synthesizes the
// resulting path into a QueryPlan. A nil plan with a nil error means
// no path satisfies the requested steps, per the planner's error
// taxonomy ("no path found" is not an error). Each call is tagged with
// a fresh planID for correlating its debug log lines. Any fatal
// condition is returned as a *planerr.Report, classified internal
// (a planner bug) or external (caused by the requested operation).
func (p *Planner) Plan(operationType supergraph.OperationType, steps []walker.FieldStep) (*queryplan.QueryPlan, error) {
	planID := uuid.New().String()
	report := &planerr.Report{}
	w := walker.New(p.graph)

	path, err := w.Walk(operationType, steps)
	if err != nil {
		addToReport(report, "walk query graph", err)
		return nil, report
	}
	if path == nil {
		p.config.Logger.Debug("no path found", abstractlogger.String("planID", planID), abstractlogger.Any("steps", steps))
		return nil, nil
	}

	if p.config.Debug.PrintOperationPath {
		p.config.Logger.Debug("operation path found", abstractlogger.String("planID", planID), abstractlogger.String("dot", path.Print(false)))
	}

	plan, err := queryplan.Synthesize(path, operationKindName(operationType))
	if err != nil {
		addToReport(report, "synthesize query plan", err)
		return nil, report
	}
	return plan, nil
}

// addToReport wraps err with context and files it into report:
// InvariantViolationError and MissingTargetFieldError mark a planner
// bug (internal, since the walker should never hand the synthesizer a
// path it cannot render); everything else -- an unsupported construct,
// an operation type the supergraph has no root for -- is caused by the
// requested operation and filed as external.
func addToReport(report *planerr.Report, context string, err error) {
	wrapped := errors.Wrap(err, context)

	var invariant *planerr.InvariantViolationError
	if errors.As(err, &invariant) {
		report.AddInternal(wrapped)
		return
	}
	var missingField *planerr.MissingTargetFieldError
	if errors.As(err, &missingField) {
		report.AddInternal(wrapped)
		return
	}
	report.AddExternal(wrapped)
}

// Graph exposes the built query graph, chiefly for the CLI's `graph`
// subcommand and the DOT diagnostic surface.
func (p *Planner) Graph() *querygraph.Graph {
	return p.graph
}

func operationKindName(t supergraph.OperationType) string {
	switch t {
	case supergraph.OperationMutation:
		return "mutation"
	case supergraph.OperationSubscription:
		return "subscription"
	default:
		return "query"
	}
}
