package queryplan

import (
	"fmt"
	"strings"
)

const entitiesBoilerplate = "_entities(representations:$representations){"

// Pretty renders the plan as the deterministic two-space-indented text
// format described by the planner's output contract: useful for
// golden-file tests and for a human staring at a `plan` CLI command.
func (p *QueryPlan) Pretty() string {
	var b strings.Builder
	writeNode(&b, p.Node, 0)
	return b.String()
}

func writeNode(b *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *Fetch:
		fmt.Fprintf(b, "%sFetch(service: %q) {\n", indent, v.ServiceName)
		fmt.Fprintf(b, "%s  %s\n", indent, prettyOperation(v.Operation))
		fmt.Fprintf(b, "%s}\n", indent)
	case *Sequence:
		fmt.Fprintf(b, "%sSequence {\n", indent)
		for _, child := range v.Nodes {
			writeNode(b, child, depth+1)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case *Parallel:
		fmt.Fprintf(b, "%sParallel {\n", indent)
		for _, child := range v.Nodes {
			writeNode(b, child, depth+1)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case *Flatten:
		fmt.Fprintf(b, "%sFlatten(path: %q) {\n", indent, strings.Join(v.Path, "."))
		writeNode(b, v.Node, depth+1)
		fmt.Fprintf(b, "%s}\n", indent)
	default:
		fmt.Fprintf(b, "%s<unknown node>\n", indent)
	}
}

// prettyOperation strips the "query(...){_entities(representations:$representations){"
// boilerplate and its closing braces from an entity operation string,
// leaving the inline fragment followed by "=>" (e.g.
// "... on T{field} =>"); a root-segment operation passes through
// unchanged.
func prettyOperation(op string) string {
	idx := strings.Index(op, entitiesBoilerplate)
	if idx < 0 {
		return op
	}
	// Two closing braces trail the inner selection: one for _entities(...),
	// one for the enclosing query(...) block. Both are replaced by "=>".
	inner := op[idx+len(entitiesBoilerplate) : len(op)-2]
	return inner + " =>"
}
