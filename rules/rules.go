// Package rules decides whether a header pair is acceptable input.
//
// A rule is a boolean expression over named header fields, e.g.
// "BitsPerPixel == 24". Rules are compiled once with govaluate and then
// evaluated in order against each input.
package rules

import (
	"fmt"
	"math"
	"strings"

	"github.com/knetic/govaluate"
)

// Default is the acceptance rule set for uncompressed 24-bit BMP files
// with a plain 40-byte info header.
var Default = []string{
	"Signature == 'BM'",
	"DataOffset == 54",
	"HeaderSize == 40",
	"BitsPerPixel == 24",
	"Compression == 0",
}

type rule struct {
	source string
	expr   *govaluate.EvaluableExpression
}

// RuleSet is an ordered list of compiled rules.
type RuleSet struct {
	rules []rule
}

// Violation reports the first rule a header pair did not satisfy.
type Violation struct {
	Rule string
	// Err is set when the rule could not be evaluated.
	Err error
}

func (v *Violation) Error() string {
	if v.Err != nil {
		return fmt.Sprintf("rule %q could not be evaluated: %v", v.Rule, v.Err)
	}
	return fmt.Sprintf("rule %q not satisfied", v.Rule)
}

func (v *Violation) Unwrap() error { return v.Err }

// Functions defines the helpers usable inside rule expressions.
func Functions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"abs": func(args ...interface{}) (interface{}, error) {
			x, err := numericArgs("abs", 1, args)
			if err != nil {
				return nil, err
			}
			return math.Abs(x[0]), nil
		},
		// padding(width) is the zero byte count closing a 24-bit row.
		"padding": func(args ...interface{}) (interface{}, error) {
			x, err := numericArgs("padding", 1, args)
			if err != nil {
				return nil, err
			}
			w := int64(x[0])
			return float64((4 - (w*3)%4) % 4), nil
		},
	}
}

func numericArgs(name string, want int, args []interface{}) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%s expects %d argument(s), got %d", name, want, len(args))
	}
	out := make([]float64, want)
	for i, a := range args {
		f, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("arg %d of %s must be numeric", i+1, name)
		}
		out[i] = f
	}
	return out, nil
}

// Compile builds a RuleSet from the given expressions. Empty expressions are
// rejected since they could never be satisfied.
func Compile(exprs []string) (RuleSet, error) {
	var rs RuleSet
	funcs := Functions()
	for _, src := range exprs {
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			return RuleSet{}, fmt.Errorf("empty rule expression")
		}
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(trimmed, funcs)
		if err != nil {
			return RuleSet{}, fmt.Errorf("invalid rule %q: %w", trimmed, err)
		}
		rs.rules = append(rs.rules, rule{source: trimmed, expr: expr})
	}
	return rs, nil
}

// WithDefaults compiles Default followed by extra.
func WithDefaults(extra []string) (RuleSet, error) {
	all := make([]string, 0, len(Default)+len(extra))
	all = append(all, Default...)
	all = append(all, extra...)
	return Compile(all)
}

// MustDefault returns the compiled Default rule set.
func MustDefault() RuleSet {
	rs, err := Compile(Default)
	if err != nil {
		panic(err)
	}
	return rs
}

// Len reports the number of rules.
func (rs RuleSet) Len() int { return len(rs.rules) }

// Check evaluates the rules in order and returns a *Violation for the first
// one that is false, not boolean, or fails to evaluate.
func (rs RuleSet) Check(params map[string]interface{}) error {
	for _, r := range rs.rules {
		result, err := r.expr.Evaluate(params)
		if err != nil {
			return &Violation{Rule: r.source, Err: err}
		}
		ok, isBool := result.(bool)
		if !isBool {
			return &Violation{Rule: r.source, Err: fmt.Errorf("result %v is not a boolean", result)}
		}
		if !ok {
			return &Violation{Rule: r.source}
		}
	}
	return nil
}
