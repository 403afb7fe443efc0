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

// Package planner lowers a pipeline's transform tree into an
// executable dag.DAG: it topologically sorts the transforms, then
// asks each one to materialize itself via the PlannerOps contract.
package planner

import (
	"fmt"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/flowforge/dataflow-core/pkg/dataflow/dag"
	"github.com/flowforge/dataflow-core/pkg/dataflow/errs"
	"github.com/flowforge/dataflow-core/pkg/dataflow/transform"
	"github.com/flowforge/dataflow-core/pkg/metrics"
	"github.com/flowforge/dataflow-core/pkg/shared/logging"
)

// AdjacencyProvider is a pipeline's planner-facing contract: the
// adjacency mapping from a transform to its downstream transforms.
// pkg/dataflow/pipeline implements this; the fluent builder surface
// that produces it belongs to the enclosing runtime.
type AdjacencyProvider interface {
	Adjacency() map[transform.Transform][]transform.Transform
}

// namedAdjacencyProvider is an optional extension: an AdjacencyProvider
// that also knows its own name, used only to label the metrics in
// pkg/metrics. pkg/dataflow/pipeline.Pipeline implements it.
type namedAdjacencyProvider interface {
	Name() string
}

func providerName(provider AdjacencyProvider) string {
	if n, ok := provider.(namedAdjacencyProvider); ok {
		return n.Name()
	}
	return "unnamed"
}

// sinkLike is satisfied by transform variants that are terminal by
// declaration (currently only Sink), exempting them from the
// no-leakage check even with an empty downstream list.
type sinkLike interface {
	IsSink() bool
}

// plannerVertex is the per-transform planning record: the vertex a
// transform's lowering registered as its output, and the next free
// outbound ordinal from it.
type plannerVertex struct {
	vertexName       string
	availableOrdinal int
}

// Planner runs on a single caller goroutine, start to finish; it holds
// no state across separate CreateDag calls other than the vertex
// naming hint cache.
type Planner struct {
	dag           *dag.DAG
	xform2vertex  map[transform.Transform]*plannerVertex
	nameIndexHint *lru.Cache
	log           *zap.SugaredLogger
}

// New returns a fresh Planner. nameHintSize bounds the vertex-naming
// optimization cache; 0 selects a sensible default.
func New(nameHintSize int) *Planner {
	if nameHintSize <= 0 {
		nameHintSize = 4096
	}
	c, _ := lru.New(nameHintSize)
	return &Planner{
		nameIndexHint: c,
		log:           logging.NewLogger(),
	}
}

// CreateDag validates that no non-sink transform leaks an unconsumed
// output, topologically sorts with a deterministic tie-break, then
// lowers each transform in order. The returned DAG is only valid on a nil error;
// a failed build's partial DAG is never returned.
func (p *Planner) CreateDag(provider AdjacencyProvider) (*dag.DAG, error) {
	pipelineName := providerName(provider)
	start := time.Now()
	fail := func(err error) (*dag.DAG, error) {
		if e, ok := err.(*errs.Error); ok {
			metrics.PlanFailures.WithLabelValues(pipelineName, string(e.Kind)).Inc()
		}
		return nil, err
	}

	adjacency := provider.Adjacency()

	// Hint indexes are only meaningful within one DAG: a carried-over
	// start index would skip past names the new DAG hasn't taken yet.
	p.nameIndexHint.Purge()

	if err := validateNoLeakage(adjacency); err != nil {
		return fail(err)
	}

	order, err := topologicalSort(adjacency)
	if err != nil {
		return fail(err)
	}

	p.dag = dag.New()
	p.xform2vertex = make(map[transform.Transform]*plannerVertex, len(order))

	for _, t := range order {
		if err := t.AddToDag(p); err != nil {
			return fail(err)
		}
	}

	result := p.dag
	p.dag = nil
	p.xform2vertex = nil

	metrics.PlanDuration.WithLabelValues(pipelineName).Observe(time.Since(start).Seconds())
	metrics.PlannedVertices.WithLabelValues(pipelineName).Set(float64(len(result.Vertices)))
	metrics.PlannedEdges.WithLabelValues(pipelineName).Set(float64(len(result.Edges)))
	return result, nil
}

func validateNoLeakage(adjacency map[transform.Transform][]transform.Transform) error {
	var leaked []transform.Transform
	for t, downstream := range adjacency {
		if len(downstream) > 0 {
			continue
		}
		if sl, ok := t.(sinkLike); ok && sl.IsSink() {
			continue
		}
		leaked = append(leaked, t)
	}
	if len(leaked) == 0 {
		return nil
	}
	sort.Slice(leaked, func(i, j int) bool { return leaked[i].String() < leaked[j].String() })
	names := make([]string, len(leaked))
	for i, t := range leaked {
		names[i] = t.String()
	}
	return errs.New(errs.InvalidPipeline, fmt.Sprintf("unattached transforms: %v", names))
}

// topologicalSort performs Kahn's algorithm over adjacency, breaking
// ties among simultaneously-ready transforms by their stable String()
// form, so the same transform tree always plans into the same vertex
// order.
func topologicalSort(adjacency map[transform.Transform][]transform.Transform) ([]transform.Transform, error) {
	indegree := make(map[transform.Transform]int, len(adjacency))
	for t := range adjacency {
		if _, ok := indegree[t]; !ok {
			indegree[t] = 0
		}
	}
	for _, downstream := range adjacency {
		for _, d := range downstream {
			indegree[d]++
		}
	}

	var ready []transform.Transform
	for t, deg := range indegree {
		if deg == 0 {
			ready = append(ready, t)
		}
	}

	var order []transform.Transform
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i].String() < ready[j].String() })
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, d := range adjacency[next] {
			indegree[d]--
			if indegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(order) != len(indegree) {
		return nil, errs.New(errs.InvalidPipeline, "cycle")
	}
	return order, nil
}

// AddVertex implements transform.PlannerOps. -1 parallelism defers to
// the engine default; any other negative value is a builder bug.
func (p *Planner) AddVertex(t transform.Transform, baseName string, meta dag.MetaSupplier) (string, error) {
	parallelism := t.LocalParallelism()
	if parallelism < -1 {
		return "", errs.New(errs.InvalidArgument, fmt.Sprintf(
			"transform %q: local parallelism %d is negative", t.String(), parallelism))
	}
	name := p.vertexName(baseName, "")
	p.dag.AddVertex(&dag.Vertex{Name: name, MetaSupplier: meta, LocalParallelism: parallelism})
	p.xform2vertex[t] = &plannerVertex{vertexName: name}
	return name, nil
}

// AddEdges implements transform.PlannerOps.
func (p *Planner) AddEdges(t transform.Transform, toVertex string, configure transform.EdgeConfigurator) error {
	for destOrd, upstream := range t.Upstream() {
		fromPv, ok := p.xform2vertex[upstream]
		if !ok {
			return errs.New(errs.InternalError, fmt.Sprintf(
				"no planner vertex registered for upstream %q of %q; topological order violated", upstream.String(), t.String()))
		}
		e := &dag.Edge{
			FromVertex:  fromPv.vertexName,
			FromOrdinal: fromPv.availableOrdinal,
			ToVertex:    toVertex,
			ToOrdinal:   destOrd,
		}
		fromPv.availableOrdinal++
		if configure != nil {
			configure(e, destOrd)
		}
		p.dag.AddEdge(e)
	}
	return nil
}

// AddEdgeFromVertex implements transform.PlannerOps.
func (p *Planner) AddEdgeFromVertex(fromVertex, toVertex string, destOrdinal int, configure transform.EdgeConfigurator) error {
	e := &dag.Edge{
		FromVertex:  fromVertex,
		FromOrdinal: 0,
		ToVertex:    toVertex,
		ToOrdinal:   destOrdinal,
	}
	if configure != nil {
		configure(e, destOrdinal)
	}
	p.dag.AddEdge(e)
	return nil
}

// VertexFor implements transform.PlannerOps.
func (p *Planner) VertexFor(t transform.Transform) (string, bool) {
	pv, ok := p.xform2vertex[t]
	if !ok {
		return "", false
	}
	return pv.vertexName, true
}

// Alias implements transform.PlannerOps.
func (p *Planner) Alias(t transform.Transform, vertexName string) {
	for _, pv := range p.xform2vertex {
		if pv.vertexName == vertexName {
			p.xform2vertex[t] = pv
			return
		}
	}
	p.xform2vertex[t] = &plannerVertex{vertexName: vertexName}
}

// MarkPeeked implements transform.PlannerOps.
func (p *Planner) MarkPeeked(vertexName string) error {
	for _, v := range p.dag.Vertices {
		if v.Name == vertexName {
			v.Peeked = true
			return nil
		}
	}
	return errs.New(errs.InternalError, fmt.Sprintf("markPeeked: no such vertex %q", vertexName))
}
