// Package formula implements the arithmetic formula grammar (+ - * /,
// parentheses, numbers, cell references), its AST, a canonical
// pretty-printer, and lazy evaluation against a cell lookup.
package formula

import (
	"sort"
	"strings"

	"github.com/latticecell/gridcore/position"
)

// LookupFunc resolves the current numeric value of a referenced cell.
// Evaluation is push-free: the sheet package supplies a closure that
// recurses into the referenced cell's own (memoized) evaluation.
type LookupFunc func(position.Position) (float64, *EvalError)

// Formula is a parsed, immutable formula: an AST root plus the sorted,
// deduplicated set of cells it references.
type Formula struct {
	root node
	refs []position.Position
}

// Parse parses expr (the formula text without its leading '=') into a
// Formula. A malformed expression yields a *ParseError.
func Parse(expr string) (*Formula, error) {
	root, refs, err := parse(expr)
	if err != nil {
		return nil, &ParseError{Expr: expr, Msg: err.Error()}
	}
	return &Formula{root: root, refs: dedupSorted(refs)}, nil
}

// dedupSorted sorts positions by their total order and removes
// duplicates, matching the original engine's "sorted ascending and
// deduplicated" referenced-cell contract.
func dedupSorted(refs []position.Position) []position.Position {
	if len(refs) == 0 {
		return nil
	}
	sorted := make([]position.Position, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	out := sorted[:1]
	for _, p := range sorted[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// Eval evaluates the formula against lookup, which is consulted for every
// cell reference the AST contains.
func (f *Formula) Eval(lookup LookupFunc) (float64, *EvalError) {
	return f.root.eval(lookup)
}

// ReferencedCells returns the formula's referenced cells, sorted
// ascending and deduplicated. The slice is owned by the caller; it is a
// fresh copy per call.
func (f *Formula) ReferencedCells() []position.Position {
	out := make([]position.Position, len(f.refs))
	copy(out, f.refs)
	return out
}

// String renders the formula's canonical form: the minimal parenthesized
// text that reparses to an equivalent AST, independent of how the
// original text was written (e.g. "1+2*3" and "1 + (2*3)" both render as
// "1 + 2 * 3").
func (f *Formula) String() string {
	var b strings.Builder
	f.root.write(&b)
	return b.String()
}
