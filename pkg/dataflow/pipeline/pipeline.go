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

// Package pipeline is the minimal stand-in for a fluent builder
// surface: it only accumulates
// transforms and derives the adjacency mapping the planner consumes.
// A real builder (map/filter/window/groupingKey/aggregate/hashJoin/...)
// would produce the same adjacency shape from friendlier call chains.
package pipeline

import "github.com/flowforge/dataflow-core/pkg/dataflow/transform"

// Pipeline accumulates a transform tree and exposes it as an
// adjacency mapping for planner.Planner.CreateDag.
type Pipeline struct {
	name       string
	transforms []transform.Transform
}

// New returns an empty Pipeline identified by name (used only as a
// metrics/logging label; it plays no role in planning itself).
func New(name string) *Pipeline {
	return &Pipeline{name: name}
}

// Name returns the pipeline's label, satisfying planner's optional
// namedAdjacencyProvider extension.
func (p *Pipeline) Name() string {
	if p.name == "" {
		return "unnamed"
	}
	return p.name
}

// Add registers t (and, transitively, nothing — every transform in
// the tree must be added explicitly, including sources and
// intermediate stages) as part of this pipeline.
func (p *Pipeline) Add(t transform.Transform) *Pipeline {
	p.transforms = append(p.transforms, t)
	return p
}

// Transforms returns every transform added so far, in addition order.
func (p *Pipeline) Transforms() []transform.Transform {
	return p.transforms
}

// Adjacency derives transform -> downstream-transforms from each
// transform's declared Upstream() list: t is downstream of every
// transform in t.Upstream(). Every added transform appears as a key,
// even ones with no downstream.
func (p *Pipeline) Adjacency() map[transform.Transform][]transform.Transform {
	adjacency := make(map[transform.Transform][]transform.Transform, len(p.transforms))
	for _, t := range p.transforms {
		if _, ok := adjacency[t]; !ok {
			adjacency[t] = nil
		}
	}
	for _, t := range p.transforms {
		for _, u := range t.Upstream() {
			adjacency[u] = append(adjacency[u], t)
		}
	}
	return adjacency
}
