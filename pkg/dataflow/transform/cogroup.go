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

// CoGroup joins N>=2 upstreams, each with its own key function, into a
// single N-ary AggregateOp. One vertex is allocated with M ordinals,
// one per upstream, each fed by an edge partitioned by that upstream's
// key function.
type CoGroup struct {
	Header
	KeyFns    []dag.KeyFn
	Aggregate AggregateOp
	WindowDef WindowDefinition
}

// NewCoGroup requires len(upstream) == len(keyFns) >= 2, validated in
// AddToDag: arity is a build-time, not constructor-time, concern in
// this core.
func NewCoGroup(name string, upstream []Transform, keyFns []dag.KeyFn, agg AggregateOp, window WindowDefinition) *CoGroup {
	return &CoGroup{
		Header:    NewHeader(name, upstream, -1),
		KeyFns:    keyFns,
		Aggregate: agg,
		WindowDef: window,
	}
}

func (c *CoGroup) String() string { return kindString("CoGroup", c.Name()) }

func (c *CoGroup) AddToDag(ops PlannerOps) error {
	n := len(c.Upstream())
	if n < 2 {
		return errs.New(errs.InvalidPipeline, fmt.Sprintf("cogroup %q: requires >=2 upstreams, got %d", c.Name(), n))
	}
	if len(c.KeyFns) != n {
		return errs.New(errs.InvalidPipeline, fmt.Sprintf("cogroup %q: %d key functions for %d upstreams", c.Name(), len(c.KeyFns), n))
	}
	if c.Aggregate != nil && c.Aggregate.Arity() != n {
		return errs.New(errs.InvalidPipeline, fmt.Sprintf("cogroup %q: aggregate arity %d does not match %d upstreams", c.Name(), c.Aggregate.Arity(), n))
	}

	vertexName, err := ops.AddVertex(c, c.Name(), coGroupMeta{aggregate: c.Aggregate, window: c.WindowDef})
	if err != nil {
		return err
	}
	return ops.AddEdges(c, vertexName, func(e *dag.Edge, destOrd int) {
		e.Routing = dag.RoutingPartitioned
		e.KeyFn = c.KeyFns[destOrd]
	})
}

type coGroupMeta struct {
	aggregate AggregateOp
	window    WindowDefinition
}

// CoAggregate joins N>=2 upstreams into a single N-ary AggregateOp
// without keying: every upstream's items broadcast into the one
// aggregating vertex.
type CoAggregate struct {
	Header
	Aggregate AggregateOp
	WindowDef WindowDefinition
}

func NewCoAggregate(name string, upstream []Transform, agg AggregateOp, window WindowDefinition) *CoAggregate {
	return &CoAggregate{Header: NewHeader(name, upstream, -1), Aggregate: agg, WindowDef: window}
}

func (c *CoAggregate) String() string { return kindString("CoAggregate", c.Name()) }

func (c *CoAggregate) AddToDag(ops PlannerOps) error {
	n := len(c.Upstream())
	if n < 2 {
		return errs.New(errs.InvalidPipeline, fmt.Sprintf("coaggregate %q: requires >=2 upstreams, got %d", c.Name(), n))
	}
	if c.Aggregate != nil && c.Aggregate.Arity() != n {
		return errs.New(errs.InvalidPipeline, fmt.Sprintf("coaggregate %q: aggregate arity %d does not match %d upstreams", c.Name(), c.Aggregate.Arity(), n))
	}

	vertexName, err := ops.AddVertex(c, c.Name(), coAggregateMeta{aggregate: c.Aggregate, window: c.WindowDef})
	if err != nil {
		return err
	}
	return ops.AddEdges(c, vertexName, func(e *dag.Edge, _ int) {
		e.Routing = dag.RoutingBroadcast
	})
}

type coAggregateMeta struct {
	aggregate AggregateOp
	window    WindowDefinition
}
