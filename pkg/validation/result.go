// Package validation holds the per-kind node configuration rules and the
// whole-graph structural checks behind the editor. Output is advisory:
// errors are meant to block save/publish in the surrounding UI, warnings
// are not. A result is always complete, never partial, so callers can
// render everything at once.
package validation

import "fmt"

// Result carries every finding for one validation pass.
type Result struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// OK reports whether the pass produced no blocking errors.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends every finding from other.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
