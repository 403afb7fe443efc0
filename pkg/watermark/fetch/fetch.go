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

// Package fetch is the downstream consumer of pkg/watermark/wsu's
// output: per-edge head-watermark tracking, and the coalescing a
// multi-input vertex does over all of its inbound edges.
package fetch

import (
	"math"
	"sync"

	"github.com/flowforge/dataflow-core/pkg/watermark/wmb"
)

// MinWatermark is the sentinel returned for a destination partition
// that has not yet observed any watermark.
const MinWatermark = int64(math.MinInt64)

// Fetcher tracks one inbound edge's (one upstream producer's)
// watermark progress, per destination partition. A join vertex with
// multiple inbound edges owns one Fetcher per edge and coalesces them
// through an edgeFetcherSet.
type Fetcher interface {
	// UpdateHeadWMB records the latest WMB this edge has published for
	// toPartitionIdx.
	UpdateHeadWMB(toPartitionIdx int, w wmb.WMB)
	// GetHeadWatermark returns the latest non-idle watermark observed
	// for toPartitionIdx, or MinWatermark if none has arrived yet or
	// the edge is currently idle on that partition.
	GetHeadWatermark(toPartitionIdx int) int64
	// GetHeadWMB returns the current head WMB for toPartitionIdx.
	GetHeadWMB(toPartitionIdx int) wmb.WMB
	// Close releases any resources the fetcher holds.
	Close() error
}

// edgeFetcher is the in-memory Fetcher implementation: it just tracks
// the latest WMB per destination partition, as reported by
// UpdateHeadWMB. A concrete deployment would instead read an offset
// timeline off the inter-step buffer the edge rides on; that transport
// is the out-of-scope cluster runtime.
type edgeFetcher struct {
	mu      sync.RWMutex
	checker *wmb.WMBChecker
	heads   map[int]wmb.WMB
}

// NewEdgeFetcher returns a Fetcher for a single inbound edge.
// idleDebounce is the number of consecutive matching idle observations
// required before an idle head WMB is trusted (wmb.WMBChecker).
func NewEdgeFetcher(idleDebounce int) Fetcher {
	return &edgeFetcher{
		checker: wmb.NewWMBChecker(idleDebounce),
		heads:   make(map[int]wmb.WMB),
	}
}

func (f *edgeFetcher) UpdateHeadWMB(toPartitionIdx int, w wmb.WMB) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// every observation goes through the checker so a non-idle head
	// resets the idle streak; an undebounced idle head keeps the
	// previous head in place.
	if validated := f.checker.ValidateHeadWMB(w); w.Idle && !validated {
		return
	}
	f.heads[toPartitionIdx] = w
}

func (f *edgeFetcher) GetHeadWatermark(toPartitionIdx int) int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	w, ok := f.heads[toPartitionIdx]
	if !ok || w.Idle {
		return MinWatermark
	}
	return w.Watermark
}

func (f *edgeFetcher) GetHeadWMB(toPartitionIdx int) wmb.WMB {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.heads[toPartitionIdx]
}

func (f *edgeFetcher) Close() error { return nil }
