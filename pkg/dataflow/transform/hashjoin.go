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

// JoinClause is one HashJoin side input's contract: how to key the
// side's items, how to key the primary stream's items for lookup
// against this side, and how to project a matched (primary, side)
// pair into the joined output.
type JoinClause struct {
	KeyLeft   dag.KeyFn
	KeyRight  dag.KeyFn
	ProjectFn func(primary, side any) (any, error)
}

// HashJoin joins one primary upstream against K>=1 side upstreams.
// Side inputs are broadcast/all-to-one (the runtime materializes each
// side as an in-memory hash table, per the classic hash-join shape);
// the primary edge keeps ordinal 0, side-input ordinals follow it in
// declaration order.
type HashJoin struct {
	Header
	SideClauses []JoinClause
}

// NewHashJoin requires len(sides) == len(sideClauses) >= 1.
func NewHashJoin(name string, primary Transform, sides []Transform, sideClauses []JoinClause) *HashJoin {
	upstream := append([]Transform{primary}, sides...)
	return &HashJoin{Header: NewHeader(name, upstream, -1), SideClauses: sideClauses}
}

func (h *HashJoin) String() string { return kindString("HashJoin", h.Name()) }

func (h *HashJoin) AddToDag(ops PlannerOps) error {
	upstream := h.Upstream()
	if len(upstream) < 2 {
		return errs.New(errs.InvalidPipeline, fmt.Sprintf("hashjoin %q: requires 1 primary + >=1 side upstream", h.Name()))
	}
	numSides := len(upstream) - 1
	if len(h.SideClauses) != numSides {
		return errs.New(errs.InvalidPipeline, fmt.Sprintf("hashjoin %q: %d join clauses for %d side inputs", h.Name(), len(h.SideClauses), numSides))
	}

	vertexName, err := ops.AddVertex(h, h.Name(), hashJoinMeta{clauses: h.SideClauses})
	if err != nil {
		return err
	}
	return ops.AddEdges(h, vertexName, func(e *dag.Edge, destOrd int) {
		if destOrd == 0 {
			e.Routing = dag.RoutingUnicast
			return
		}
		e.Routing = dag.RoutingBroadcast
	})
}

type hashJoinMeta struct {
	clauses []JoinClause
}
