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

	"github.com/flowforge/dataflow-core/pkg/dataflow/errs"
)

// PeekedTransform wraps any transform to add a logging side-effect
// tap without changing its semantics.
// It delegates vertex/edge creation to Wrapped, then registers itself
// as the owner of the produced vertex so downstream transforms resolve
// through the peek wrapper rather than around it.
type PeekedTransform struct {
	Wrapped Transform
}

// NewPeeked wraps t. The resulting transform shares t's name, upstream
// list and parallelism hint.
func NewPeeked(t Transform) *PeekedTransform {
	return &PeekedTransform{Wrapped: t}
}

func (p *PeekedTransform) Name() string { return p.Wrapped.Name() }
func (p *PeekedTransform) Upstream() []Transform { return p.Wrapped.Upstream() }
func (p *PeekedTransform) LocalParallelism() int { return p.Wrapped.LocalParallelism() }
func (p *PeekedTransform) String() string { return kindString("Peeked", p.Wrapped.String()) }

func (p *PeekedTransform) AddToDag(ops PlannerOps) error {
	if err := p.Wrapped.AddToDag(ops); err != nil {
		return err
	}
	vertexName, ok := ops.VertexFor(p.Wrapped)
	if !ok {
		return errs.New(errs.InternalError, fmt.Sprintf("peeked %q: wrapped transform registered no output vertex", p.Name()))
	}
	ops.Alias(p, vertexName)
	return ops.MarkPeeked(vertexName)
}
