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

// Package transform holds the pipeline-level transform tree: a
// tagged-variant sum type over Source, Map/Filter/FlatMap,
// MapUsingContext, Group, CoGroup, CoAggregate, HashJoin, Merge,
// Peeked, Sink and Custom transforms. Each variant knows how to lower
// itself into one or more dag.Vertex/dag.Edge via the PlannerOps
// contract; the variants themselves never touch the DAG directly.
package transform

import "fmt"

// Transform is the common contract every variant satisfies. It plays
// the role the original subclassed Transform hierarchy played: shared
// header fields plus a variant-specific AddToDag lowering.
type Transform interface {
	// Name is the transform's human-readable name, used as the base
	// for the vertex name(s) it lowers into.
	Name() string
	// Upstream returns, in declared order, the transforms feeding this
	// one. Empty for Source.
	Upstream() []Transform
	// LocalParallelism is the requested local parallelism hint, or -1
	// to defer to the engine default.
	LocalParallelism() int
	// String is the stable representation used to break topological-sort
	// ties deterministically; by convention "Kind(Name)".
	String() string
	// AddToDag materializes this transform's vertices/edges through
	// ops, registering its output vertex for downstream transforms to
	// connect to.
	AddToDag(ops PlannerOps) error
}

// Header carries the fields common to every transform variant.
type Header struct {
	name             string
	upstream         []Transform
	localParallelism int
}

// NewHeader builds a Header. localParallelism may be -1 for "engine
// default"; any other negative value is rejected by the planner when
// the transform's vertex is allocated.
func NewHeader(name string, upstream []Transform, localParallelism int) Header {
	return Header{name: name, upstream: upstream, localParallelism: localParallelism}
}

func (h Header) Name() string { return h.name }
func (h Header) Upstream() []Transform { return h.upstream }
func (h Header) LocalParallelism() int { return h.localParallelism }

// kindString is a small helper so each variant's String() reads
// "Kind(name)", which is what the planner tie-breaks the topological
// sort on.
func kindString(kind, name string) string {
	return fmt.Sprintf("%s(%s)", kind, name)
}
