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

// Sink is a terminal, one-upstream transform with a processor-supplier
// and no downstream. A Sink is, by declaration, exempt from the
// planner's no-leakage check even though its downstream list is empty.
type Sink struct {
	Header
	ProcessorSupplier dag.MetaSupplier
	// Distributed selects partitioned-by-key vs all-to-one delivery
	// into the sink; Distributed=false behaves like an all-to-one sink
	// (a single writer instance sees everything).
	Distributed bool
	KeyFn       dag.KeyFn
}

func NewSink(name string, upstream Transform, processorSupplier dag.MetaSupplier) *Sink {
	return &Sink{Header: NewHeader(name, []Transform{upstream}, -1), ProcessorSupplier: processorSupplier}
}

func (s *Sink) String() string { return kindString("Sink", s.Name()) }

// IsSink marks this type as exempt from the leakage check, whatever
// its declared downstream list says.
func (s *Sink) IsSink() bool { return true }

func (s *Sink) AddToDag(ops PlannerOps) error {
	vertexName, err := ops.AddVertex(s, s.Name(), s.ProcessorSupplier)
	if err != nil {
		return err
	}
	return ops.AddEdges(s, vertexName, func(e *dag.Edge, _ int) {
		if s.Distributed && s.KeyFn != nil {
			e.Routing = dag.RoutingPartitioned
			e.KeyFn = s.KeyFn
		} else {
			e.Routing = dag.RoutingAllToOne
		}
	})
}
