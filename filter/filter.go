// Package filter compiles boolean expressions used to narrow list
// command output, built on the expr language.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Entry is the environment a filter expression is evaluated against.
// Name is the fully-qualified resource path, ShortName its last
// segment.
type Entry struct {
	Name      string
	ShortName string
	Project   string
}

// Filter is a compiled filter expression.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable filter. The
// expression must evaluate to a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression %q: %w", expression, err)
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Match evaluates the filter against an entry.
func (f *Filter) Match(entry Entry) (bool, error) {
	env := map[string]any{
		"name":      entry.Name,
		"shortName": entry.ShortName,
		"project":   entry.Project,
	}

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter %q: %w", f.expression, err)
	}

	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q did not evaluate to a boolean", f.expression)
	}
	return matched, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// ShortName extracts the last path segment of a fully-qualified
// resource name.
func ShortName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
