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

// Custom carries a user-supplied processor-meta-supplier and lowers
// with the same one-edge-per-upstream shape as Merge, but keeps
// whatever routing policy the caller configures (default unicast),
// since a Custom transform's runtime semantics are opaque to the
// planner by design.
type Custom struct {
	Header
	ProcessorSupplier dag.MetaSupplier
	Configure         EdgeConfigurator
}

func NewCustom(name string, upstream []Transform, processorSupplier dag.MetaSupplier, configure EdgeConfigurator) *Custom {
	return &Custom{Header: NewHeader(name, upstream, -1), ProcessorSupplier: processorSupplier, Configure: configure}
}

func (c *Custom) String() string { return kindString("Custom", c.Name()) }

func (c *Custom) AddToDag(ops PlannerOps) error {
	vertexName, err := ops.AddVertex(c, c.Name(), c.ProcessorSupplier)
	if err != nil {
		return err
	}
	configure := c.Configure
	if configure == nil {
		configure = func(e *dag.Edge, _ int) { e.Routing = dag.RoutingUnicast }
	}
	return ops.AddEdges(c, vertexName, configure)
}
