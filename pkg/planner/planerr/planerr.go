// Package planerr defines the planner's fatal-error taxonomy. A report
// accumulates internal (planner-side) and external (user-facing)
// errors, and HasErrors tells a caller whether to abort.
package planerr

import "fmt"

// UnsupportedConstructError marks a construct the planner recognizes
// but deliberately does not support. The walker returns it for an
// operation type the supergraph has no root type for, and for a
// fragment node inside an entity edge's requirement selection.
type UnsupportedConstructError struct {
	Construct string
	Detail    string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct %s: %s", e.Construct, e.Detail)
}

// MissingTargetFieldError marks a synthesizer failure: the field
// downstream of an entity move could not be identified.
type MissingTargetFieldError struct {
	TypeName string
	Detail   string
}

func (e *MissingTargetFieldError) Error() string {
	return fmt.Sprintf("missing target field for %s: %s", e.TypeName, e.Detail)
}

// InvariantViolationError marks an internal planner bug: e.g.
// edges.length != requiredPathsForEdges.length.
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("internal invariant violation: %s", e.Detail)
}

// Report accumulates errors over the course of one planning call:
// internal (planner-side, e.g. invariant violations) and external
// (caused by the input SDL/operation) are tracked separately so a
// caller can decide how much detail to surface.
type Report struct {
	InternalErrors []error
	ExternalErrors []error
}

func (r *Report) AddInternal(err error) {
	r.InternalErrors = append(r.InternalErrors, err)
}

func (r *Report) AddExternal(err error) {
	r.ExternalErrors = append(r.ExternalErrors, err)
}

func (r *Report) HasErrors() bool {
	return len(r.InternalErrors) > 0 || len(r.ExternalErrors) > 0
}

func (r *Report) Error() string {
	out := ""
	for i, err := range r.InternalErrors {
		if i != 0 {
			out += "\n"
		}
		out += "internal: " + err.Error()
	}
	for i, err := range r.ExternalErrors {
		if len(out) > 0 {
			out += "\n"
		}
		if i != 0 {
			out += "\n"
		}
		out += "external: " + err.Error()
	}
	return out
}
