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

	"github.com/flowforge/dataflow-core/pkg/dataflow/dag"
	"github.com/flowforge/dataflow-core/pkg/dataflow/errs"
)

// Group keys its single upstream and applies an AggregateOp, either
// per window (WindowDef != nil) or continuously ("rolling",
// WindowDef == nil). Arity is always 1: one key function, one
// upstream.
type Group struct {
	Header
	KeyFn     dag.KeyFn
	Aggregate AggregateOp
	WindowDef WindowDefinition
}

func NewGroup(name string, upstream Transform, keyFn dag.KeyFn, agg AggregateOp, window WindowDefinition) *Group {
	return &Group{
		Header:    NewHeader(name, []Transform{upstream}, -1),
		KeyFn:     keyFn,
		Aggregate: agg,
		WindowDef: window,
	}
}

func (g *Group) String() string { return kindString("Group", g.Name()) }

// AddToDag lowers a rolling Group to a single partitioned-in vertex,
// and a windowed Group to a two-vertex accumulator+combiner pair:
// a partitioning accumulator, then a
// combiner that receives the accumulator's partial results
// re-partitioned by the same key so that all partial aggregates for a
// given key land on the same combiner instance.
func (g *Group) AddToDag(ops PlannerOps) error {
	if g.Aggregate != nil && g.Aggregate.Arity() != 1 {
		return errs.New(errs.InvalidPipeline, fmt.Sprintf("group %q: aggregate arity %d does not match 1 upstream", g.Name(), g.Aggregate.Arity()))
	}

	if g.WindowDef == nil {
		vertexName, err := ops.AddVertex(g, g.Name(), g.Aggregate)
		if err != nil {
			return err
		}
		return ops.AddEdges(g, vertexName, func(e *dag.Edge, _ int) {
			e.Routing = dag.RoutingPartitioned
			e.KeyFn = g.KeyFn
		})
	}

	accName, err := ops.AddVertex(g, g.Name(), accumulatorMeta{aggregate: g.Aggregate, window: g.WindowDef})
	if err != nil {
		return err
	}
	if err := ops.AddEdges(g, accName, func(e *dag.Edge, _ int) {
		e.Routing = dag.RoutingPartitioned
		e.KeyFn = g.KeyFn
	}); err != nil {
		return err
	}

	combinerName, err := ops.AddVertex(g, g.Name()+"-combine", combinerMeta{aggregate: g.Aggregate, window: g.WindowDef})
	if err != nil {
		return err
	}
	return ops.AddEdgeFromVertex(accName, combinerName, 0, func(e *dag.Edge, _ int) {
		e.Routing = dag.RoutingPartitioned
		e.KeyFn = g.KeyFn
		e.Distributed = true
	})
}

type accumulatorMeta struct {
	aggregate AggregateOp
	window    WindowDefinition
}

type combinerMeta struct {
	aggregate AggregateOp
	window    WindowDefinition
}
