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

// oneUpstreamVertex is the lowering shared by every one-upstream,
// one-vertex variant (Map/Filter/FlatMap/MapUsingContext): allocate a
// vertex, draw one unicast edge at ordinal 0 from the single upstream.
func oneUpstreamVertex(ops PlannerOps, t Transform, meta dag.MetaSupplier) error {
	vertexName, err := ops.AddVertex(t, t.Name(), meta)
	if err != nil {
		return err
	}
	return ops.AddEdges(t, vertexName, func(e *dag.Edge, _ int) {
		e.Routing = dag.RoutingUnicast
	})
}

// Map applies a stateless function to every item, one-to-one.
type Map struct {
	Header
	Fn MapFn
}

func NewMap(name string, upstream Transform, fn MapFn) *Map {
	return &Map{Header: NewHeader(name, []Transform{upstream}, -1), Fn: fn}
}

func (m *Map) String() string { return kindString("Map", m.Name()) }
func (m *Map) AddToDag(ops PlannerOps) error { return oneUpstreamVertex(ops, m, m.Fn) }

// Filter keeps or drops each item, one-to-(zero-or-one).
type Filter struct {
	Header
	Fn FilterFn
}

func NewFilter(name string, upstream Transform, fn FilterFn) *Filter {
	return &Filter{Header: NewHeader(name, []Transform{upstream}, -1), Fn: fn}
}

func (f *Filter) String() string { return kindString("Filter", f.Name()) }
func (f *Filter) AddToDag(ops PlannerOps) error { return oneUpstreamVertex(ops, f, f.Fn) }

// FlatMap applies a stateless function producing zero or more items
// per input item.
type FlatMap struct {
	Header
	Fn FlatMapFn
}

func NewFlatMap(name string, upstream Transform, fn FlatMapFn) *FlatMap {
	return &FlatMap{Header: NewHeader(name, []Transform{upstream}, -1), Fn: fn}
}

func (f *FlatMap) String() string { return kindString("FlatMap", f.Name()) }
func (f *FlatMap) AddToDag(ops PlannerOps) error { return oneUpstreamVertex(ops, f, f.Fn) }

// ContextFactory builds the per-instance context MapUsingContext hands
// to Fn on every call (e.g. a shared HTTP client, a cache handle). Its
// concrete return type is opaque to the planner.
type ContextFactory func() (any, error)

// ContextMapFn is the function MapUsingContext applies, given the
// per-instance context built by ContextFactory.
type ContextMapFn func(ctx any, item map[string]any) (any, error)

// MapUsingContext applies a function that needs a once-per-instance
// context (e.g. a client handle). The Async variant carries a bounded
// concurrency budget so at most MaxConcurrency calls to Fn are
// in-flight at once for a given instance.
type MapUsingContext struct {
	Header
	ContextFactory ContextFactory
	Fn             ContextMapFn
	Async          bool
	MaxConcurrency int
}

func NewMapUsingContext(name string, upstream Transform, cf ContextFactory, fn ContextMapFn) *MapUsingContext {
	return &MapUsingContext{Header: NewHeader(name, []Transform{upstream}, -1), ContextFactory: cf, Fn: fn}
}

// NewMapUsingContextAsync is the bounded-concurrency variant; maxConcurrency
// must be at least 1.
func NewMapUsingContextAsync(name string, upstream Transform, cf ContextFactory, fn ContextMapFn, maxConcurrency int) *MapUsingContext {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &MapUsingContext{
		Header:         NewHeader(name, []Transform{upstream}, -1),
		ContextFactory: cf,
		Fn:             fn,
		Async:          true,
		MaxConcurrency: maxConcurrency,
	}
}

func (m *MapUsingContext) String() string {
	if m.Async {
		return kindString("MapUsingContextAsync", m.Name())
	}
	return kindString("MapUsingContext", m.Name())
}

func (m *MapUsingContext) AddToDag(ops PlannerOps) error {
	return oneUpstreamVertex(ops, m, mapUsingContextMeta{factory: m.ContextFactory, fn: m.Fn, async: m.Async, maxConcurrency: m.MaxConcurrency})
}

// mapUsingContextMeta is the opaque MetaSupplier payload carried into
// the DAG vertex; the out-of-scope execution runtime interprets it to
// build the actual per-instance processor.
type mapUsingContextMeta struct {
	factory        ContextFactory
	fn             ContextMapFn
	async          bool
	maxConcurrency int
}
