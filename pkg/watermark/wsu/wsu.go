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

// Package wsu implements the WatermarkSourceUtil: a single-threaded,
// externally-clocked coalescer that turns per-partition event-time
// policies into one monotone watermark stream with idle-partition
// handling.
package wsu

import (
	"fmt"
	"math"

	"go.uber.org/atomic"

	"github.com/flowforge/dataflow-core/pkg/dataflow/errs"
	"github.com/flowforge/dataflow-core/pkg/metrics"
	"github.com/flowforge/dataflow-core/pkg/watermark/policy"
)

// MinWatermark is the sentinel "no information yet" watermark value.
const MinWatermark = int64(math.MinInt64)

// TimestampFn extracts the event timestamp, in epoch milliseconds,
// from a source item.
type TimestampFn func(item any) int64

// NewWatermarkPolicyFn builds a fresh per-partition policy; called once
// per partition, at construction and on every increasePartitionCount.
type NewWatermarkPolicyFn func() policy.WatermarkPolicy

// WrapFn packages item alongside its extracted event timestamp for
// downstream delivery, letting the caller store per-partition offsets
// only after the corresponding watermark has been emitted.
type WrapFn func(item any, eventTimestampMillis int64) any

// Watermark is an emitted monotone watermark value, in epoch
// milliseconds.
type Watermark int64

// IdleMessage is the sentinel emitted the first time every owned
// partition goes idle; downstream coalescers exclude this producer
// until a subsequent non-idle watermark resumes it.
type IdleMessage struct{}

// WatermarkSourceUtil is owned exclusively by one processor instance
// and is not safe for concurrent use: every ReportEvent
// reaches it through HandleEvent, called from a single goroutine.
type WatermarkSourceUtil struct {
	timestampFn       TimestampFn
	newPolicy         NewWatermarkPolicyFn
	emission          policy.EmissionPolicy
	idleTimeoutNanos  int64
	wrapFn            WrapFn
	policyFingerprint string
	pipelineName      string
	vertexName        string

	policies   []policy.WatermarkPolicy
	watermark  []int64
	markIdleAt []int64

	lastEmittedWm int64
	allAreIdle    bool
	inCall        bool

	// publishedWm/publishedIdle are a lock-free snapshot of the last
	// committed (lastEmittedWm, allAreIdle) pair, refreshed at the end
	// of every HandleEvent; a status-reporting goroutine (e.g. a
	// metrics scraper) can read Status() without any synchronization
	// with the single-owner hot path.
	publishedWm   atomic.Int64
	publishedIdle atomic.Bool
}

// Config bundles the construction-time parameters of a
// WatermarkSourceUtil: the watermark-generation parameters a Source
// transform carries, plus the wire-wrapping function and initial
// partition count a concrete source needs.
type Config struct {
	TimestampFn        TimestampFn
	NewWatermarkPolicy NewWatermarkPolicyFn
	EmissionPolicy     policy.EmissionPolicy
	IdleTimeoutMillis  int64
	WrapFn             WrapFn
	// PolicyFingerprint identifies the windowing/policy configuration
	// this instance was built with; when both are non-empty, Restore
	// rejects a snapshot whose fingerprint differs, so an incompatible sliding-window change
	// across a restart fails loudly instead of silently corrupting
	// event time.
	PolicyFingerprint string
	// PipelineName/VertexName label this instance's pkg/metrics series;
	// both default to "unnamed" when left blank.
	PipelineName string
	VertexName   string
}

// New builds a WatermarkSourceUtil with initialPartitionCount
// partitions, as of now (nanoseconds, caller's monotonic clock).
func New(cfg Config, initialPartitionCount int, now int64) *WatermarkSourceUtil {
	if cfg.EmissionPolicy == nil {
		cfg.EmissionPolicy = policy.AlwaysEmit{}
	}
	if cfg.WrapFn == nil {
		cfg.WrapFn = func(item any, _ int64) any { return item }
	}
	if cfg.PipelineName == "" {
		cfg.PipelineName = "unnamed"
	}
	if cfg.VertexName == "" {
		cfg.VertexName = "unnamed"
	}
	w := &WatermarkSourceUtil{
		timestampFn:       cfg.TimestampFn,
		newPolicy:         cfg.NewWatermarkPolicy,
		emission:          cfg.EmissionPolicy,
		idleTimeoutNanos:  cfg.IdleTimeoutMillis * int64(1e6),
		wrapFn:            cfg.WrapFn,
		policyFingerprint: cfg.PolicyFingerprint,
		pipelineName:      cfg.PipelineName,
		vertexName:        cfg.VertexName,
		lastEmittedWm:     MinWatermark,
	}
	w.publishedWm.Store(MinWatermark)
	w.growTo(initialPartitionCount, now)
	return w
}

func (w *WatermarkSourceUtil) growTo(newCount int, now int64) {
	for i := len(w.policies); i < newCount; i++ {
		w.policies = append(w.policies, w.newPolicy())
		w.watermark = append(w.watermark, MinWatermark)
		w.markIdleAt = append(w.markIdleAt, now+w.idleTimeoutNanos)
	}
}

// PartitionCount returns the current number of tracked partitions.
func (w *WatermarkSourceUtil) PartitionCount() int {
	return len(w.policies)
}

// IncreasePartitionCount extends every per-partition array to
// newCount; the partition count only ever grows. New partitions start
// active (their idle deadline is now+idleTimeout), so a just-discovered
// partition cannot be skipped over before it has had a chance to
// report an event.
func (w *WatermarkSourceUtil) IncreasePartitionCount(now int64, newCount int) error {
	if newCount < len(w.policies) {
		return errs.New(errs.InvalidArgument, fmt.Sprintf(
			"increasePartitionCount: newCount %d < currentCount %d", newCount, len(w.policies)))
	}
	w.growTo(newCount, now)
	return nil
}

// HandleEvent is WSU's single hot-path entry point. When
// hasItem is false, partitionIdx is ignored and this call is
// handleNoEvent's tick. The returned slice holds at most two elements,
// in order: a Watermark or IdleMessage (if emitted), then the item
// wrapped by WrapFn (if hasItem). A prior call's result must be fully
// consumed (read from the slice) before the next call; calling
// HandleEvent re-entrantly — from within the processing of a result it
// just returned — is a programming error and reports
// ContractViolation rather than corrupting state.
func (w *WatermarkSourceUtil) HandleEvent(now int64, item any, hasItem bool, partitionIdx int) ([]any, error) {
	if w.inCall {
		return nil, errs.New(errs.ContractViolation, "HandleEvent called re-entrantly; previous result not drained")
	}
	w.inCall = true
	defer func() { w.inCall = false }()

	var ts int64
	if hasItem {
		ts = w.timestampFn(item)
		w.policies[partitionIdx].ReportEvent(ts)
		w.markIdleAt[partitionIdx] = now + w.idleTimeoutNanos
		w.allAreIdle = false
	}

	min := int64(math.MaxInt64)
	idleCount := 0
	for i := range w.policies {
		if w.idleTimeoutNanos > 0 && w.markIdleAt[i] <= now {
			idleCount++
			continue
		}
		w.watermark[i] = w.policies[i].CurrentWatermark()
		if w.watermark[i] < min {
			min = w.watermark[i]
		}
	}
	metrics.IdlePartitions.WithLabelValues(w.pipelineName, w.vertexName).Set(float64(idleCount))

	var out []any
	switch {
	case min == math.MaxInt64:
		if !w.allAreIdle {
			w.allAreIdle = true
			metrics.IdleMessagesEmitted.WithLabelValues(w.pipelineName, w.vertexName).Inc()
			out = append(out, IdleMessage{})
		}
	case w.emission.ShouldEmit(min, w.lastEmittedWm):
		w.allAreIdle = false
		w.lastEmittedWm = min
		out = append(out, Watermark(min))
	}

	if hasItem {
		out = append(out, w.wrapFn(item, ts))
	}

	w.publishedWm.Store(w.lastEmittedWm)
	w.publishedIdle.Store(w.allAreIdle)
	if w.lastEmittedWm != MinWatermark {
		lagMillis := now/int64(1e6) - w.lastEmittedWm
		metrics.WatermarkLag.WithLabelValues(w.pipelineName, w.vertexName).Set(float64(lagMillis))
	}
	return out, nil
}

// HandleNoEvent is handleEvent(now, none, -1): a clock tick with no new
// item, used to detect idle partitions and drive idle-sentinel
// emission between reads.
func (w *WatermarkSourceUtil) HandleNoEvent(now int64) ([]any, error) {
	return w.HandleEvent(now, nil, false, -1)
}

// GetWatermark returns the last-reported watermark for partitionIdx,
// for snapshotting.
func (w *WatermarkSourceUtil) GetWatermark(partitionIdx int) int64 {
	return w.watermark[partitionIdx]
}

// RestoreWatermark sets watermark[partitionIdx] = v, for snapshot
// restore.
func (w *WatermarkSourceUtil) RestoreWatermark(partitionIdx int, v int64) {
	w.watermark[partitionIdx] = v
}

// Status is a concurrency-safe, lock-free read of the last committed
// (lastEmittedWm, allAreIdle) pair; intended for a reporting goroutine
// that must not synchronize with the HandleEvent hot path.
type Status struct {
	LastEmittedWatermark int64
	AllIdle              bool
}

func (w *WatermarkSourceUtil) Status() Status {
	return Status{
		LastEmittedWatermark: w.publishedWm.Load(),
		AllIdle:              w.publishedIdle.Load(),
	}
}
