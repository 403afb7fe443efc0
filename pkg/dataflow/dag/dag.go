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

// Package dag holds the execution-layer graph the planner lowers a
// pipeline's transform tree into: Vertices, Edges and the DAG that
// accumulates them during a single createDag call.
package dag

import (
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// RoutingPolicy is the delivery contract an Edge makes to its
// receiver(s).
type RoutingPolicy string

const (
	// RoutingUnicast delivers each item to exactly one instance of the
	// destination vertex, chosen by the runtime (e.g. round-robin).
	RoutingUnicast RoutingPolicy = "unicast"
	// RoutingBroadcast delivers every item to every instance of the
	// destination vertex. No cross-receiver ordering is implied.
	RoutingBroadcast RoutingPolicy = "broadcast"
	// RoutingPartitioned delivers items with the same key to the same
	// destination instance, preserving per-key order.
	RoutingPartitioned RoutingPolicy = "partitioned"
	// RoutingAllToOne delivers every upstream instance's items to a
	// single destination instance (e.g. non-keyed global aggregation).
	RoutingAllToOne RoutingPolicy = "allToOne"
	// RoutingIsolated keeps each upstream instance's stream pinned to a
	// distinct destination instance (one-to-one, no fan-out).
	RoutingIsolated RoutingPolicy = "isolated"
)

// KeyFn extracts a partitioning key from an item, used by
// RoutingPartitioned edges.
type KeyFn func(item any) (string, error)

// MetaSupplier produces, per vertex instance, the processor the
// runtime instantiates. Its concrete shape belongs to the
// out-of-scope execution runtime; the planner only carries it through.
type MetaSupplier any

// Vertex is one node of the planned DAG.
type Vertex struct {
	// Name is unique within the DAG (see Planner.vertexName).
	Name string
	// MetaSupplier produces per-instance processors; opaque to the planner.
	MetaSupplier MetaSupplier
	// LocalParallelism is the vertex's requested local parallelism, or
	// -1 to defer to the engine default.
	LocalParallelism int
	// Peeked marks a vertex as decorated with a logging tap by a
	// PeekedTransform wrapper; semantics are otherwise unchanged.
	Peeked bool
}

// jsonVertex mirrors Vertex for export: the MetaSupplier is opaque and
// often holds function values, so only its presence is serialized.
type jsonVertex struct {
	Name             string `json:"name"`
	HasMetaSupplier  bool   `json:"hasMetaSupplier"`
	LocalParallelism int    `json:"localParallelism"`
	Peeked           bool   `json:"peeked,omitempty"`
}

// MarshalJSON renders the vertex without its (unserializable) meta
// supplier.
func (v Vertex) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonVertex{
		Name:             v.Name,
		HasMetaSupplier:  v.MetaSupplier != nil,
		LocalParallelism: v.LocalParallelism,
		Peeked:           v.Peeked,
	})
}

// Edge connects one outbound ordinal of a source vertex to one inbound
// ordinal of a destination vertex.
type Edge struct {
	ID          string
	FromVertex  string
	FromOrdinal int
	ToVertex    string
	ToOrdinal   int
	Routing     RoutingPolicy
	KeyFn       KeyFn `json:"-"`
	Distributed bool
	Priority    int
}

// jsonEdge mirrors Edge but drops the unexported-equivalent KeyFn so
// goccy/go-json can (de)serialize a plan for export without choking on
// a function value.
type jsonEdge struct {
	ID          string        `json:"id"`
	FromVertex  string        `json:"fromVertex"`
	FromOrdinal int           `json:"fromOrdinal"`
	ToVertex    string        `json:"toVertex"`
	ToOrdinal   int           `json:"toOrdinal"`
	Routing     RoutingPolicy `json:"routing"`
	Keyed       bool          `json:"keyed"`
	Distributed bool          `json:"distributed"`
	Priority    int           `json:"priority"`
}

// MarshalJSON renders the edge without its (unserializable) key function.
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonEdge{
		ID:          e.ID,
		FromVertex:  e.FromVertex,
		FromOrdinal: e.FromOrdinal,
		ToVertex:    e.ToVertex,
		ToOrdinal:   e.ToOrdinal,
		Routing:     e.Routing,
		Keyed:       e.KeyFn != nil,
		Distributed: e.Distributed,
		Priority:    e.Priority,
	})
}

// DAG accumulates Vertices and Edges over the course of one createDag
// call. A DAG under construction is never handed back to the caller;
// Planner.CreateDag only returns it once every transform has lowered
// successfully.
type DAG struct {
	Vertices []*Vertex
	Edges    []*Edge

	vertexNames map[string]struct{}
}

// New returns an empty DAG.
func New() *DAG {
	return &DAG{vertexNames: make(map[string]struct{})}
}

// AddVertex appends a new vertex. The caller (Planner) is responsible
// for ensuring name uniqueness before calling this; AddVertex itself
// just records it.
func (d *DAG) AddVertex(v *Vertex) {
	d.Vertices = append(d.Vertices, v)
	d.vertexNames[v.Name] = struct{}{}
}

// HasVertex reports whether name is already taken in this DAG.
func (d *DAG) HasVertex(name string) bool {
	_, ok := d.vertexNames[name]
	return ok
}

// AddEdge appends a new edge, generating a stable ID for it.
func (d *DAG) AddEdge(e *Edge) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	d.Edges = append(d.Edges, e)
}

// JSON renders the DAG for export (e.g. by cmd/planservice).
func (d *DAG) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
