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

import "github.com/flowforge/dataflow-core/pkg/dataflow/dag"

// EdgeConfigurator is applied to a freshly created edge before it is
// inserted into the DAG, letting a variant set routing/distribution
// policy per destination ordinal.
type EdgeConfigurator func(e *dag.Edge, destOrdinal int)

// PlannerOps is the small mutation surface a Transform needs from the
// Planner while lowering itself. Transforms never see the Planner or
// the DAG directly; this keeps the coupling explicit and fake-able in
// tests.
type PlannerOps interface {
	// AddVertex allocates a fresh vertex under a name derived from
	// baseName (via VertexName) and registers t -> that vertex as the
	// transform's current output vertex. Calling it more than once for
	// the same t re-registers the output (used by multi-vertex
	// lowerings, e.g. windowed Group's accumulator+combiner pair).
	AddVertex(t Transform, baseName string, meta dag.MetaSupplier) (vertexName string, err error)
	// AddEdges draws one inbound edge per entry of t.Upstream(), in
	// order, into toVertex at consecutive destination ordinals
	// starting at 0. configure is invoked per edge to set its routing
	// policy.
	AddEdges(t Transform, toVertex string, configure EdgeConfigurator) error
	// AddEdgeFromVertex draws a single inbound edge directly from an
	// already-allocated vertex (by name) into toVertex at destOrdinal,
	// bypassing the transform->vertex lookup AddEdges uses. Multi-vertex
	// lowerings (e.g. windowed Group's combiner stage) use this to wire
	// their own internal vertices together.
	AddEdgeFromVertex(fromVertex, toVertex string, destOrdinal int, configure EdgeConfigurator) error
	// VertexName returns a DAG-unique name built from baseName and
	// suffix.
	VertexName(baseName, suffix string) string
	// VertexFor returns the vertex currently registered as t's output,
	// if any.
	VertexFor(t Transform) (string, bool)
	// Alias registers t as owning the already-allocated vertexName,
	// without creating a new vertex. Used by PeekedTransform, which
	// delegates vertex/edge creation to its wrapped transform but must
	// itself be the key downstream transforms resolve.
	Alias(t Transform, vertexName string)
	// MarkPeeked marks vertexName's produced vertex as carrying a
	// logging peek tap. It does not change routing/semantics.
	MarkPeeked(vertexName string) error
}
