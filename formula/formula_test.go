package formula_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticecell/gridcore/formula"
	"github.com/latticecell/gridcore/position"
)

func mustParse(t *testing.T, expr string) *formula.Formula {
	t.Helper()
	f, err := formula.Parse(expr)
	require.NoError(t, err)
	return f
}

func TestParseValidExpressions(t *testing.T) {
	for _, expr := range []string{
		"1", "1+2", "1 + 2 * 3", "(1+2)*3", "A1", "A1+B2", "-5", "+5", "1--2", "((1))",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := formula.Parse(expr)
			require.NoError(t, err)
		})
	}
}

func TestParseInvalidExpressions(t *testing.T) {
	for _, expr := range []string{
		"", "1+", "*1", "(1+2", "1+2)", "A1:B2", "1 2", "1..2",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := formula.Parse(expr)
			require.Error(t, err)
			var parseErr *formula.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func lookupAlwaysZero(position.Position) (float64, *formula.EvalError) {
	return 0, nil
}

func TestEvalArithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"1+2", 3},
		{"2*3+4", 10},
		{"2*(3+4)", 14},
		{"10/2/5", 1},
		{"-5+10", 5},
		{"2--3", 5},
		{"1 - 2 - 3", -4},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			f := mustParse(t, c.expr)
			got, evalErr := f.Eval(lookupAlwaysZero)
			require.Nil(t, evalErr)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	f := mustParse(t, "1/0")
	_, evalErr := f.Eval(lookupAlwaysZero)
	require.NotNil(t, evalErr)
	assert.Equal(t, formula.Div0Error, evalErr.Kind)
	assert.Equal(t, "#DIV/0!", evalErr.Error())
}

func TestOutOfBoundsOrRowZeroRefParsesButYieldsRefError(t *testing.T) {
	for _, expr := range []string{"A0", "A0+1"} {
		t.Run(expr, func(t *testing.T) {
			f := mustParse(t, expr)
			_, evalErr := f.Eval(lookupAlwaysZero)
			require.NotNil(t, evalErr)
			assert.Equal(t, formula.RefError, evalErr.Kind)
			assert.Equal(t, "#REF!", evalErr.Error())
		})
	}
}

func TestOutOfBoundsRefExcludedFromReferencedCells(t *testing.T) {
	f := mustParse(t, "A0+A1")
	refs := f.ReferencedCells()
	require.Len(t, refs, 1)
	assert.Equal(t, position.Parse("A1"), refs[0])
}

func TestEvalPropagatesReferenceError(t *testing.T) {
	lookup := func(position.Position) (float64, *formula.EvalError) {
		return 0, &formula.EvalError{Kind: formula.RefError}
	}
	f := mustParse(t, "A1+1")
	_, evalErr := f.Eval(lookup)
	require.NotNil(t, evalErr)
	assert.Equal(t, formula.RefError, evalErr.Kind)
}

func TestReferencedCellsSortedAndDeduped(t *testing.T) {
	f := mustParse(t, "B2+A1+B2+A1")
	refs := f.ReferencedCells()
	require.Len(t, refs, 2)
	assert.Equal(t, position.Parse("A1"), refs[0])
	assert.Equal(t, position.Parse("B2"), refs[1])
}

func TestCanonicalString(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"1+2", "1 + 2"},
		{"1 +    2*3", "1 + 2 * 3"},
		{"(1+2)*3", "(1 + 2) * 3"},
		{"1-(2-3)", "1 - (2 - 3)"},
		{"(1-2)-3", "1 - 2 - 3"},
		{"1-(2+3)", "1 - (2 + 3)"},
		{"(1+2)+3", "1 + 2 + 3"},
		{"1/(2/3)", "1 / (2 / 3)"},
		{"(1/2)/3", "1 / 2 / 3"},
		{"A1+B2", "A1 + B2"},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			f := mustParse(t, c.expr)
			assert.Equal(t, c.want, f.String())
		})
	}
}
