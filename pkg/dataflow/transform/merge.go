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

// Merge unions N upstreams of assignment-compatible element type by
// concatenating their streams: one vertex, one inbound edge per
// upstream at distinct ordinals, unicast routing.
type Merge struct {
	Header
}

func NewMerge(name string, upstream []Transform) *Merge {
	return &Merge{Header: NewHeader(name, upstream, -1)}
}

func (m *Merge) String() string { return kindString("Merge", m.Name()) }

func (m *Merge) AddToDag(ops PlannerOps) error {
	if len(m.Upstream()) < 1 {
		return errs.New(errs.InvalidPipeline, fmt.Sprintf("merge %q: requires >=1 upstream", m.Name()))
	}
	vertexName, err := ops.AddVertex(m, m.Name(), nil)
	if err != nil {
		return err
	}
	return ops.AddEdges(m, vertexName, func(e *dag.Edge, _ int) {
		e.Routing = dag.RoutingUnicast
	})
}
