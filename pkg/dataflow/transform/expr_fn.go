/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package transform

import (
	"fmt"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
)

// FilterFn is the stateless predicate a Filter transform applies to
// each item. Serializing a user's real FilterFn for cluster
// distribution is out of scope; ExprFilterFn is the
// local/test stand-in used by cmd/dagplan and this package's tests.
type FilterFn func(item map[string]any) (bool, error)

// MapFn is the stateless function a Map transform applies to each
// item.
type MapFn func(item map[string]any) (any, error)

// FlatMapFn is the stateless function a FlatMap transform applies to
// each item, producing zero or more output items.
type FlatMapFn func(item map[string]any) ([]any, error)

// ExprFilterFn compiles an expr-lang boolean expression once and
// returns a FilterFn that evaluates it against each item's fields.
func ExprFilterFn(expression string) (FilterFn, error) {
	program, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter expression %q: %w", expression, err)
	}
	return func(item map[string]any) (bool, error) {
		out, err := expr.Run(program, item)
		if err != nil {
			return false, fmt.Errorf("evaluating filter expression %q: %w", expression, err)
		}
		b, ok := out.(bool)
		if !ok {
			return false, fmt.Errorf("filter expression %q did not evaluate to bool, got %T", expression, out)
		}
		return b, nil
	}, nil
}

// ExprMapFn compiles an expr-lang expression once and returns a MapFn
// that evaluates it against each item's fields.
func ExprMapFn(expression string) (MapFn, error) {
	program, err := expr.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("compiling map expression %q: %w", expression, err)
	}
	return func(item map[string]any) (any, error) {
		return runProgram(program, item, expression)
	}, nil
}

func runProgram(program *vm.Program, item map[string]any, expression string) (any, error) {
	out, err := expr.Run(program, item)
	if err != nil {
		return nil, fmt.Errorf("evaluating map expression %q: %w", expression, err)
	}
	return out, nil
}
