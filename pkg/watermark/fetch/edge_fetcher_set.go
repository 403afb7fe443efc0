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

package fetch

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/flowforge/dataflow-core/pkg/shared/logging"
	"github.com/flowforge/dataflow-core/pkg/watermark/wmb"
)

// edgeFetcherSet coalesces the Fetchers of every inbound edge of a
// join vertex (e.g. a HashJoin or CoGroup/CoAggregate destination)
// into a single Fetcher whose watermark is the minimum across all
// non-idle producers, keyed by the from-vertex name. An idle member is
// excluded from the minimum until a non-idle watermark resumes it, so
// one quiet edge cannot stall the join's event time.
type edgeFetcherSet struct {
	edgeFetchers map[string]Fetcher
	log          *zap.SugaredLogger
}

// NewEdgeFetcherSet returns a Fetcher that coalesces edgeFetchers,
// keyed by the name of each edge's source vertex.
func NewEdgeFetcherSet(ctx context.Context, edgeFetchers map[string]Fetcher) Fetcher {
	return &edgeFetcherSet{
		edgeFetchers: edgeFetchers,
		log:          logging.FromContext(ctx),
	}
}

func (efs *edgeFetcherSet) UpdateHeadWMB(toPartitionIdx int, w wmb.WMB) {
	// edgeFetcherSet is a read-side coalescer; individual member
	// Fetchers are updated directly by their own producer, not through
	// the set.
}

func (efs *edgeFetcherSet) GetHeadWatermark(toPartitionIdx int) int64 {
	overall := int64(math.MaxInt64)
	for fromVertex, fetcher := range efs.edgeFetchers {
		wm := fetcher.GetHeadWatermark(toPartitionIdx)
		if wm == MinWatermark {
			continue
		}
		efs.log.Debugw("edge head watermark", "fromVertex", fromVertex, "partition", toPartitionIdx, "watermark", wm)
		if wm < overall {
			overall = wm
		}
	}
	if overall == math.MaxInt64 {
		return MinWatermark
	}
	return overall
}

// GetHeadWMB returns the smallest-watermark idle head WMB across every
// member edge, but only if every member is currently idle on
// toPartitionIdx; an empty WMB if even one is still producing.
func (efs *edgeFetcherSet) GetHeadWMB(toPartitionIdx int) wmb.WMB {
	var overall = wmb.WMB{Offset: math.MaxInt64, Watermark: math.MaxInt64}
	for _, fetcher := range efs.edgeFetchers {
		w := fetcher.GetHeadWMB(toPartitionIdx)
		if !w.Idle {
			return wmb.WMB{}
		}
		if w.Watermark < overall.Watermark || (w.Watermark == overall.Watermark && w.Offset < overall.Offset) {
			overall = w
		}
	}
	if current := efs.GetHeadWatermark(toPartitionIdx); current != MinWatermark && overall.Watermark > current {
		return wmb.WMB{}
	}
	return overall
}

func (efs *edgeFetcherSet) Close() error {
	for _, fetcher := range efs.edgeFetchers {
		if err := fetcher.Close(); err != nil {
			return err
		}
	}
	return nil
}
