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

import "github.com/montanaflynn/stats"

const minInt64 = int64(-1) << 63

// LimitingLagPolicy estimates watermark as the maximum event timestamp
// seen so far minus a fixed allowed lag, matching WSU's single-threaded,
// lock-free ownership model: ReportEvent/CurrentWatermark
// are only ever called from the owning processor's one goroutine.
type LimitingLagPolicy struct {
	maxEventTimestamp int64
	lagMillis         int64
}

// NewLimitingLagPolicy returns a policy whose watermark trails the
// highest observed event timestamp by lagMillis.
func NewLimitingLagPolicy(lagMillis int64) *LimitingLagPolicy {
	return &LimitingLagPolicy{maxEventTimestamp: minInt64, lagMillis: lagMillis}
}

func (p *LimitingLagPolicy) ReportEvent(eventTimestampMillis int64) {
	if eventTimestampMillis > p.maxEventTimestamp {
		p.maxEventTimestamp = eventTimestampMillis
	}
}

func (p *LimitingLagPolicy) CurrentWatermark() int64 {
	if p.maxEventTimestamp == minInt64 {
		return minInt64
	}
	return p.maxEventTimestamp - p.lagMillis
}

// AdaptiveLagPolicy trails the maximum observed event timestamp by a
// lag derived from a rolling percentile of recent out-of-orderness
// (how far behind the running maximum late events arrive), rather
// than a fixed constant: bursts of out-of-order arrivals widen the
// lag. In-order events add no samples, so the lag narrows only when
// later, smaller skews push larger ones out of the window. The
// returned watermark never decreases, even when the lag widens.
type AdaptiveLagPolicy struct {
	maxEventTimestamp int64
	skewSamples       []float64
	window            int
	percentile        float64
	minLagMillis      int64
	lastWatermark     int64
}

// NewAdaptiveLagPolicy returns a policy that keeps up to window recent
// skew samples and trails maxEventTimestamp by the percentile-th
// percentile of them, floored at minLagMillis.
func NewAdaptiveLagPolicy(window int, percentile float64, minLagMillis int64) *AdaptiveLagPolicy {
	if window <= 0 {
		window = 64
	}
	return &AdaptiveLagPolicy{
		maxEventTimestamp: minInt64,
		lastWatermark:     minInt64,
		window:            window,
		percentile:        percentile,
		minLagMillis:      minLagMillis,
	}
}

// ReportEvent records eventTimestampMillis; an event arriving behind
// the maximum seen so far contributes its distance behind it as a
// skew sample.
func (p *AdaptiveLagPolicy) ReportEvent(eventTimestampMillis int64) {
	if eventTimestampMillis > p.maxEventTimestamp {
		p.maxEventTimestamp = eventTimestampMillis
		return
	}
	// a late event; its distance behind the max is the skew sample.
	if p.maxEventTimestamp != minInt64 {
		p.recordSkew(float64(p.maxEventTimestamp - eventTimestampMillis))
	}
}

func (p *AdaptiveLagPolicy) recordSkew(sample float64) {
	p.skewSamples = append(p.skewSamples, sample)
	if len(p.skewSamples) > p.window {
		p.skewSamples = p.skewSamples[len(p.skewSamples)-p.window:]
	}
}

func (p *AdaptiveLagPolicy) CurrentWatermark() int64 {
	if p.maxEventTimestamp == minInt64 {
		return minInt64
	}
	lag := p.minLagMillis
	if len(p.skewSamples) > 0 {
		pct, err := stats.Percentile(p.skewSamples, p.percentile)
		if err != nil {
			// too few samples to interpolate at this percentile; the
			// nearest-rank value is then the smallest sample.
			pct, err = stats.Min(p.skewSamples)
		}
		if err == nil && int64(pct) > lag {
			lag = int64(pct)
		}
	}
	if wm := p.maxEventTimestamp - lag; wm > p.lastWatermark {
		p.lastWatermark = wm
	}
	return p.lastWatermark
}
