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

package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/flowforge/dataflow-core/pkg/watermark/policy"
	"github.com/flowforge/dataflow-core/pkg/watermark/wsu"
)

func TestGenerator_EmitsWrappedItemsAndWatermarks(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := wsu.New(wsu.Config{
		TimestampFn:        ItemTimestamp,
		NewWatermarkPolicy: func() policy.WatermarkPolicy { return policy.NewLimitingLagPolicy(0) },
	}, 1, time.Now().UnixNano())
	g := New(2, 2, 16, 10*time.Millisecond, w)

	out := g.Start(context.Background())

	var items, watermarks int
	deadline := time.After(3 * time.Second)
collect:
	for items < 4 {
		select {
		case batch, ok := <-out:
			if !ok {
				break collect
			}
			for _, o := range batch {
				switch o.(type) {
				case Item:
					items++
				case wsu.Watermark:
					watermarks++
				}
			}
		case <-deadline:
			break collect
		}
	}
	g.Stop()
	for range out {
		// drain until closed so the run goroutine exits.
	}

	require.GreaterOrEqual(t, items, 4, "one tick of rpu=2 x keys=2 produces 4 items")
	assert.Greater(t, watermarks, 0)
}

func TestGenerator_Defaults(t *testing.T) {
	w := wsu.New(wsu.Config{
		TimestampFn:        ItemTimestamp,
		NewWatermarkPolicy: func() policy.WatermarkPolicy { return policy.NewLimitingLagPolicy(0) },
	}, 1, 0)
	g := New(0, 0, 0, time.Second, w)
	assert.Equal(t, 5, g.RPU)
	assert.Equal(t, 1, g.KeyCount)
	assert.Equal(t, 8, g.MsgSize)
}

func TestMarshalRecord(t *testing.T) {
	b, err := MarshalRecord(Record{Value: 7, EventTime: 1700000000000})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"eventTime":1700000000000`)
}
