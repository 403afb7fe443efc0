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

// AggregateOp is the interface concrete aggregate algebras (sum,
// count, linear-trend, reducing, ...) satisfy. Their internals are an
// external collaborator; the planner only needs to know how many
// inputs an aggregate expects, to validate CoGroup/CoAggregate arity
// against their upstream counts.
type AggregateOp interface {
	// Arity is the number of distinct inputs this aggregate combines,
	// e.g. 1 for a plain Group, N for an N-ary CoGroup/CoAggregate.
	Arity() int
}

// WindowDefinition is an opaque window specification; its semantics
// (tumbling/sliding/session sizing, eviction, trigger policy) belong
// to the external windowing collaborator. The planner only needs to
// know whether one was supplied, to choose between the windowed
// two-vertex lowering and the rolling single-vertex lowering.
type WindowDefinition any
