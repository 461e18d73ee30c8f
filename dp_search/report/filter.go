package report

import (
	"fmt"

	"github.com/Knetic/govaluate"

	"ssdps/dp_search/search"
	"ssdps/utils"
)

// FilterVariables names usable in an output filter expression
var FilterVariables = []string{"a", "b", "c", "d", "case_pct", "control_pct", "or", "rr", "arr", "lci", "uci", "p_value", "size"}

// Filter output-side predicate over the scores of a pattern, e.g. "or > 3 && a >= 10"
type Filter struct {
	expr *govaluate.EvaluableExpression
}

// NewFilter compiles expr. An empty expression keeps every pattern.
func NewFilter(expr string) (*Filter, error) {
	if expr == "" {
		return nil, nil
	}
	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("%q: %v: %w", expr, err, utils.ErrFilterExpr)
	}
	known := make(map[string]bool, len(FilterVariables))
	for _, v := range FilterVariables {
		known[v] = true
	}
	for _, v := range expression.Vars() {
		if !known[v] {
			return nil, fmt.Errorf("%q: unknown variable %s: %w", expr, v, utils.ErrFilterExpr)
		}
	}
	return &Filter{expr: expression}, nil
}

func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expr.String()
}

// Match evaluates the expression on p, which must yield a boolean
func (f *Filter) Match(p *search.Pattern) (bool, error) {
	if f == nil {
		return true, nil
	}
	s := p.Stats
	variables := map[string]interface{}{
		"a":           float64(p.Table.A),
		"b":           float64(p.Table.B),
		"c":           float64(p.Table.C),
		"d":           float64(p.Table.D),
		"case_pct":    s.CasePct,
		"control_pct": s.ControlPct,
		"or":          s.OR,
		"rr":          s.RR,
		"arr":         s.ARR,
		"lci":         s.LCI,
		"uci":         s.UCI,
		"p_value":     s.PValue,
		"size":        float64(p.Group.Count()),
	}
	result, err := f.expr.Evaluate(variables)
	if err != nil {
		return false, fmt.Errorf("%v: %w", err, utils.ErrFilterExpr)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%s yields %v, not a boolean: %w", f.expr.String(), result, utils.ErrFilterExpr)
	}
	return matched, nil
}
