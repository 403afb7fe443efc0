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

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitingLagPolicy(t *testing.T) {
	p := NewLimitingLagPolicy(30)
	assert.Equal(t, minInt64, p.CurrentWatermark(), "no events yet")

	p.ReportEvent(100)
	assert.Equal(t, int64(70), p.CurrentWatermark())

	p.ReportEvent(50)
	assert.Equal(t, int64(70), p.CurrentWatermark(), "late event must not regress the watermark")

	p.ReportEvent(200)
	assert.Equal(t, int64(170), p.CurrentWatermark())
}

func TestLimitingLagPolicy_NonDecreasing(t *testing.T) {
	p := NewLimitingLagPolicy(10)
	last := p.CurrentWatermark()
	for _, ts := range []int64{5, 100, 3, 99, 101, 50, 300} {
		p.ReportEvent(ts)
		wm := p.CurrentWatermark()
		assert.GreaterOrEqual(t, wm, last)
		last = wm
	}
}

func TestAdaptiveLagPolicy(t *testing.T) {
	p := NewAdaptiveLagPolicy(16, 95, 5)
	assert.Equal(t, minInt64, p.CurrentWatermark())

	p.ReportEvent(100)
	assert.Equal(t, int64(95), p.CurrentWatermark(), "no skew samples yet, floor lag applies")

	// a 10ms-late event widens the lag to the observed skew, but the
	// watermark never falls below the 95 already reported.
	p.ReportEvent(90)
	assert.Equal(t, int64(95), p.CurrentWatermark(), "late event must not regress the watermark")

	// once the maximum moves on, the widened 10ms lag applies.
	p.ReportEvent(200)
	assert.Equal(t, int64(190), p.CurrentWatermark())
}

func TestAdaptiveLagPolicy_OrderedStreamKeepsFloor(t *testing.T) {
	p := NewAdaptiveLagPolicy(16, 95, 7)
	for ts := int64(10); ts <= 100; ts += 10 {
		p.ReportEvent(ts)
	}
	assert.Equal(t, int64(93), p.CurrentWatermark(), "in-order stream never widens past the floor")
}

func TestAlwaysEmit(t *testing.T) {
	assert.True(t, AlwaysEmit{}.ShouldEmit(10, 5))
	assert.False(t, AlwaysEmit{}.ShouldEmit(5, 5))
	assert.False(t, AlwaysEmit{}.ShouldEmit(4, 5))
}

func TestThrottlingEmissionPolicy(t *testing.T) {
	p := ThrottlingEmissionPolicy{MinAdvanceMillis: 100}
	assert.False(t, p.ShouldEmit(50, 0), "advance below threshold suppressed")
	assert.True(t, p.ShouldEmit(100, 0))
	assert.True(t, p.ShouldEmit(250, 100))
	assert.False(t, p.ShouldEmit(100, 100))
	assert.False(t, p.ShouldEmit(90, 100), "regression never emits")
}

// An inching stream must still cross the threshold eventually, since
// the comparison is against lastEmitted rather than last candidate.
func TestThrottlingEmissionPolicy_EventualProgress(t *testing.T) {
	p := ThrottlingEmissionPolicy{MinAdvanceMillis: 100}
	lastEmitted := int64(0)
	emitted := 0
	for candidate := int64(1); candidate <= 1000; candidate++ {
		if p.ShouldEmit(candidate, lastEmitted) {
			lastEmitted = candidate
			emitted++
		}
	}
	assert.Equal(t, 10, emitted)
}
