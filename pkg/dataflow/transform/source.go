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

// TimestampFn extracts the event timestamp, in epoch milliseconds,
// from a source item.
type TimestampFn func(item any) int64

// WatermarkPolicyFn builds a fresh per-partition watermark policy.
// Its concrete return type is the watermark.WatermarkPolicy contract
// in pkg/watermark/policy; kept as `any` here so transform has no
// import-time dependency on the watermark package (the planner never
// needs to call it, only to carry it through to the source's
// processor supplier).
type WatermarkPolicyFn func() any

// WatermarkGenerationParams bundles the per-source watermark
// configuration a Source transform carries through to its
// processor-supplier, which wires it into a WatermarkSourceUtil at
// runtime.
type WatermarkGenerationParams struct {
	TimestampFn        TimestampFn
	NewWatermarkPolicy WatermarkPolicyFn
	// EmissionPolicy decides whether a candidate watermark is worth
	// emitting; kept as `any` for the same reason as NewWatermarkPolicy.
	EmissionPolicy    any
	IdleTimeoutMillis int64
}

// Source is a no-upstream transform: a processor-supplier plus
// watermark-generation parameters.
type Source struct {
	Header
	ProcessorSupplier dag.MetaSupplier
	Watermark         WatermarkGenerationParams
}

// NewSource builds a Source transform. name becomes the sole vertex's
// base name.
func NewSource(name string, processorSupplier dag.MetaSupplier, wm WatermarkGenerationParams) *Source {
	return &Source{
		Header:            NewHeader(name, nil, -1),
		ProcessorSupplier: processorSupplier,
		Watermark:         wm,
	}
}

func (s *Source) String() string { return kindString("Source", s.Name()) }

// AddToDag lowers Source to a single vertex with no inbound edges.
func (s *Source) AddToDag(ops PlannerOps) error {
	_, err := ops.AddVertex(s, s.Name(), s.ProcessorSupplier)
	return err
}
