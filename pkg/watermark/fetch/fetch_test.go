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
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/flowforge/dataflow-core/pkg/watermark/wmb"
)

func TestEdgeFetcher_TracksHead(t *testing.T) {
	f := NewEdgeFetcher(2)
	assert.Equal(t, MinWatermark, f.GetHeadWatermark(0), "no WMB seen yet")

	f.UpdateHeadWMB(0, wmb.WMB{Offset: 10, Watermark: 100})
	assert.Equal(t, int64(100), f.GetHeadWatermark(0))

	f.UpdateHeadWMB(0, wmb.WMB{Offset: 11, Watermark: 150})
	assert.Equal(t, int64(150), f.GetHeadWatermark(0))
}

func TestEdgeFetcher_IdleDebounce(t *testing.T) {
	f := NewEdgeFetcher(2)
	f.UpdateHeadWMB(0, wmb.WMB{Offset: 10, Watermark: 100})

	// first idle observation is not yet trusted; the head stays active.
	idle := wmb.WMB{Idle: true, Offset: 10, Watermark: 100}
	f.UpdateHeadWMB(0, idle)
	assert.Equal(t, int64(100), f.GetHeadWatermark(0))
	assert.False(t, f.GetHeadWMB(0).Idle)

	// the same idle head seen again crosses the debounce threshold.
	f.UpdateHeadWMB(0, idle)
	assert.Equal(t, MinWatermark, f.GetHeadWatermark(0), "idle head excludes the edge")
	assert.True(t, f.GetHeadWMB(0).Idle)
}

func TestEdgeFetcherSet_CoalescesMin(t *testing.T) {
	a := NewEdgeFetcher(1)
	b := NewEdgeFetcher(1)
	a.UpdateHeadWMB(0, wmb.WMB{Offset: 1, Watermark: 100})
	b.UpdateHeadWMB(0, wmb.WMB{Offset: 1, Watermark: 70})

	set := NewEdgeFetcherSet(context.Background(), map[string]Fetcher{"a": a, "b": b})
	assert.Equal(t, int64(70), set.GetHeadWatermark(0))
}

func TestEdgeFetcherSet_SkipsIdleMembers(t *testing.T) {
	a := NewEdgeFetcher(1)
	b := NewEdgeFetcher(1)
	a.UpdateHeadWMB(0, wmb.WMB{Offset: 1, Watermark: 100})
	// b goes idle at watermark 70; an idle member must not cap the min.
	idle := wmb.WMB{Idle: true, Offset: 2, Watermark: 70}
	b.UpdateHeadWMB(0, idle)
	b.UpdateHeadWMB(0, idle)

	set := NewEdgeFetcherSet(context.Background(), map[string]Fetcher{"a": a, "b": b})
	assert.Equal(t, int64(100), set.GetHeadWatermark(0))
}

func TestEdgeFetcherSet_HeadWMBRequiresAllIdle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	active := NewMockFetcher(ctrl)
	active.EXPECT().GetHeadWMB(0).Return(wmb.WMB{Offset: 5, Watermark: 200}).AnyTimes()
	active.EXPECT().GetHeadWatermark(0).Return(int64(200)).AnyTimes()

	idle := NewMockFetcher(ctrl)
	idle.EXPECT().GetHeadWMB(0).Return(wmb.WMB{Idle: true, Offset: 3, Watermark: 90}).AnyTimes()
	idle.EXPECT().GetHeadWatermark(0).Return(MinWatermark).AnyTimes()

	set := NewEdgeFetcherSet(context.Background(), map[string]Fetcher{"active": active, "idle": idle})
	assert.Equal(t, wmb.WMB{}, set.GetHeadWMB(0), "one producing member suppresses the idle head")

	allIdle := NewEdgeFetcherSet(context.Background(), map[string]Fetcher{"idle": idle})
	got := allIdle.GetHeadWMB(0)
	assert.True(t, got.Idle)
	assert.Equal(t, int64(90), got.Watermark)
}

func TestEdgeFetcherSet_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := NewMockFetcher(ctrl)
	b := NewMockFetcher(ctrl)
	a.EXPECT().Close().Return(nil)
	b.EXPECT().Close().Return(nil)

	set := NewEdgeFetcherSet(context.Background(), map[string]Fetcher{"a": a, "b": b})
	assert.NoError(t, set.Close())
}
