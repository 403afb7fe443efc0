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

package wsu

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/dataflow-core/pkg/watermark/store"
)

// Snapshot keys are broadcast at restore: every instance reads the
// whole store and keeps only the partitions it now owns, so external
// partitions may move between instances across a restart.
func TestSnapshot_BroadcastRestoreAcrossInstances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newTestWSU(t, 2, 0, 0)
	_, _ = src.HandleEvent(0, int64(10), true, 0)
	_, _ = src.HandleEvent(0, int64(20), true, 1)

	snap, err := src.Snapshot([]string{"topic-0", "topic-1"})
	require.NoError(t, err)

	st := store.NewMockSnapshotStore(ctrl)
	st.EXPECT().PutWatermark("topic-0", int64(10)).Return(nil)
	st.EXPECT().PutWatermark("topic-1", int64(20)).Return(nil)
	for key, wm := range snap.Watermarks {
		require.NoError(t, st.PutWatermark(key, wm))
	}

	// after the restart each instance owns a single partition; the
	// store hands every key to both.
	st.EXPECT().GetAllWatermarks().Return(map[string]int64{"topic-0": 10, "topic-1": 20}, nil).Times(2)

	restore := func(ownedKey string) *WatermarkSourceUtil {
		w := newTestWSU(t, 1, 0, 0)
		all, err := st.GetAllWatermarks()
		require.NoError(t, err)
		require.NoError(t, w.Restore(SnapshotPayload{Watermarks: all}, map[string]int{ownedKey: 0}))
		return w
	}

	first := restore("topic-0")
	second := restore("topic-1")
	assert.Equal(t, int64(10), first.GetWatermark(0))
	assert.Equal(t, int64(20), second.GetWatermark(0))
}
