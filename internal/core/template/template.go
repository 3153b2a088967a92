// Package template supports live editing of {{variable}} expressions: it
// detects an open, unterminated reference at the cursor, ranks completion
// candidates against it, and splices an accepted candidate back into the
// buffer. Pure string transformations, no hidden state.
package template

import (
	"sort"
	"strings"
)

const (
	openMarker  = "{{"
	closeMarker = "}}"
)

// MaxSuggestions caps the ranked completion list.
const MaxSuggestions = 12

// Context describes an open reference under the cursor. ReplaceFrom and
// ReplaceTo bound the byte range an accepted suggestion replaces.
type Context struct {
	OpenIndex   int    // byte offset of the "{{"
	ReplaceFrom int    // start of the partial query
	ReplaceTo   int    // cursor position
	Query       string // trimmed partial reference typed so far
}

// ContextAt scans backward from cursor for the most recent unclosed open
// marker. It returns false when there is no open context: no marker
// before the cursor, or the marker was already closed. A malformed buffer
// is never an error, just an absent context.
func ContextAt(buffer string, cursor int) (Context, bool) {
	if cursor < 0 {
		return Context{}, false
	}
	if cursor > len(buffer) {
		cursor = len(buffer)
	}
	open := strings.LastIndex(buffer[:cursor], openMarker)
	if open < 0 {
		return Context{}, false
	}
	if strings.Contains(buffer[open+len(openMarker):cursor], closeMarker) {
		return Context{}, false
	}
	from := open + len(openMarker)
	for from < cursor && (buffer[from] == ' ' || buffer[from] == '\t') {
		from++
	}
	return Context{
		OpenIndex:   open,
		ReplaceFrom: from,
		ReplaceTo:   cursor,
		Query:       strings.TrimSpace(buffer[from:cursor]),
	}, true
}

// SuggestionsFor ranks the scope expressions against the partial query:
// exact case-insensitive match first, then prefix matches, then substring
// matches; everything else is excluded. Ties break lexicographically and
// the result is truncated to MaxSuggestions.
func SuggestionsFor(scopeExprs []string, query string) []string {
	type ranked struct {
		expr string
		rank int
	}
	q := strings.ToLower(strings.TrimSpace(query))

	var matches []ranked
	for _, expr := range scopeExprs {
		e := strings.ToLower(expr)
		switch {
		case q == "":
			matches = append(matches, ranked{expr, 1})
		case e == q:
			matches = append(matches, ranked{expr, 0})
		case strings.HasPrefix(e, q):
			matches = append(matches, ranked{expr, 1})
		case strings.Contains(e, q):
			matches = append(matches, ranked{expr, 2})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		return matches[i].expr < matches[j].expr
	})

	if len(matches) > MaxSuggestions {
		matches = matches[:MaxSuggestions]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.expr
	}
	return out
}

// Accept splices the chosen expression into the context's replace range
// and appends a close marker when none immediately follows, preserving
// the rest of the buffer verbatim.
func Accept(buffer string, ctx Context, chosen string) string {
	from, to := ctx.ReplaceFrom, ctx.ReplaceTo
	if from < 0 || to < from || to > len(buffer) {
		return buffer
	}
	rest := buffer[to:]
	var b strings.Builder
	b.Grow(len(buffer) + len(chosen) + len(closeMarker))
	b.WriteString(buffer[:from])
	b.WriteString(chosen)
	if !closedAhead(rest) {
		b.WriteString(closeMarker)
	}
	b.WriteString(rest)
	return b.String()
}

// closedAhead reports whether a close marker already terminates the open
// reference: one must appear in the remainder before any new open marker.
func closedAhead(rest string) bool {
	close := strings.Index(rest, closeMarker)
	if close < 0 {
		return false
	}
	open := strings.Index(rest, openMarker)
	return open < 0 || close < open
}
