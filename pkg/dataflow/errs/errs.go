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

// Package errs defines the four build-time error kinds shared by the
// planner and the watermark source util. All failures
// described by this core are build-time or programming-error
// failures; nothing here is retried.
package errs

import (
	"fmt"

	"go.uber.org/multierr"
)

// Kind classifies a build-time failure by who has to fix it.
type Kind string

const (
	// InvalidPipeline covers leakage, cycles and arity mismatches,
	// surfaced to the caller of Planner.CreateDag; fatal to the build.
	InvalidPipeline Kind = "InvalidPipeline"
	// InvalidArgument covers a caller-supplied value that is out of
	// range for the operation, e.g. a shrinking partition count or a
	// negative parallelism hint.
	InvalidArgument Kind = "InvalidArgument"
	// ContractViolation covers a caller failing the single-owner
	// drain contract on WatermarkSourceUtil's traverser.
	ContractViolation Kind = "ContractViolation"
	// InternalError covers a planner invariant violation, e.g. a
	// transform->vertex lookup miss that a correct topological order
	// should have prevented.
	InternalError Kind = "InternalError"
)

// Error is the concrete error value returned for every Kind above.
type Error struct {
	Kind    Kind
	Message string
	// cause holds zero or more underlying errors, combined with
	// multierr so one Error can report several causes at once.
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// Is supports errors.Is(err, errs.InvalidPipeline) style checks by
// kind, without needing a sentinel value per kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(kindSentinel)
	return ok && e.Kind == Kind(k)
}

type kindSentinel Kind

// IsKind returns a sentinel usable with errors.Is to check only the
// Kind, ignoring message and causes, e.g.:
//
//	errors.Is(err, errs.IsKind(errs.InvalidPipeline))
func IsKind(k Kind) error { return kindSentinel(k) }

func (k kindSentinel) Error() string { return string(k) }

// New builds a Kind error with an optional set of underlying causes,
// combined with multierr so New(InvalidPipeline, "...", causes...)
// reports every cause in one error value.
func New(kind Kind, message string, causes ...error) *Error {
	return &Error{Kind: kind, Message: message, cause: multierr.Combine(causes...)}
}
