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

// Package generator is an in-memory Source processor-supplier that
// generates JSON payloads on a fixed tick, feeding every record
// through a WatermarkSourceUtil so downstream vertices see a correct
// watermark/idle stream alongside the data. Useful for demos and for
// load-testing a planned DAG without an external system.
package generator

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/flowforge/dataflow-core/pkg/shared/logging"
	"github.com/flowforge/dataflow-core/pkg/watermark/wsu"
)

// Record is one generated payload: a numeric Value plus Padding bytes
// used only to hit a target message size, timestamped in event time.
type Record struct {
	Value     uint64 `json:"value,omitempty"`
	Padding   []byte `json:"padding,omitempty"`
	EventTime int64  `json:"eventTime"`
}

// Item is one emitted item: a Record plus the key it was generated
// under (round-robin across KeyCount keys).
type Item struct {
	Key    string
	Record Record
}

// Generator is a Source processor-supplier: on every Timeunit tick it
// fires RPU records for each of KeyCount keys (RPU*KeyCount records per
// tick), and feeds every
// record through a WatermarkSourceUtil so downstream vertices see a
// correct watermark/idle stream alongside the generated data.
type Generator struct {
	RPU      int
	KeyCount int
	MsgSize  int
	Timeunit time.Duration

	wsu    *wsu.WatermarkSourceUtil
	out    chan []any
	cancel context.CancelFunc
	log    *zap.SugaredLogger
}

// New builds a Generator wired to w; w's TimestampFn must extract
// Item.Record.EventTime (e.g. via ItemTimestamp below).
func New(rpu, keyCount, msgSize int, timeunit time.Duration, w *wsu.WatermarkSourceUtil) *Generator {
	if rpu <= 0 {
		rpu = 5
	}
	if keyCount <= 0 {
		keyCount = 1
	}
	if msgSize <= 0 {
		msgSize = 8
	}
	return &Generator{
		RPU:      rpu,
		KeyCount: keyCount,
		MsgSize:  msgSize,
		Timeunit: timeunit,
		wsu:      w,
		out:      make(chan []any, rpu*keyCount*5),
		log:      logging.NewLogger(),
	}
}

// ItemTimestamp is the wsu.TimestampFn for Items produced by Generator.
func ItemTimestamp(item any) int64 {
	return item.(Item).Record.EventTime
}

// Start begins ticking and returns the channel of HandleEvent output
// batches (each a []any holding at most a Watermark/IdleMessage
// followed by the wrapped Item, per wsu.HandleEvent's contract). Start
// returns immediately; generation runs until ctx is canceled.
func (g *Generator) Start(ctx context.Context) <-chan []any {
	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	go g.run(ctx)
	return g.out
}

// Stop cancels generation and closes the output channel.
func (g *Generator) Stop() {
	if g.cancel != nil {
		g.cancel()
	}
}

func (g *Generator) run(ctx context.Context) {
	defer close(g.out)
	ticker := time.NewTicker(g.Timeunit)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-ticker.C:
			g.emitTick(ctx, tick.UnixMilli())
		}
	}
}

func (g *Generator) emitTick(ctx context.Context, nowMillis int64) {
	for i := 0; i < g.RPU; i++ {
		for k := 0; k < g.KeyCount; k++ {
			item := Item{
				Key:    fmt.Sprintf("key-%d", k),
				Record: newRecord(g.MsgSize, nowMillis),
			}
			out, err := g.wsu.HandleEvent(nowMillis*int64(1e6), item, true, k%g.wsu.PartitionCount())
			if err != nil {
				g.log.Warnw("handleEvent failed", zap.Error(err))
				continue
			}
			select {
			case <-ctx.Done():
				return
			case g.out <- out:
			}
		}
	}
}

func newRecord(msgSize int, eventTimeMillis int64) Record {
	r := Record{Value: uint64(eventTimeMillis), EventTime: eventTimeMillis}
	padSize := msgSize - 8
	if padSize > 0 {
		b := make([]byte, padSize)
		_, _ = rand.Read(b)
		r.Padding = b
	}
	return r
}

// MarshalRecord renders r as the JSON payload a downstream vertex
// would decode.
func MarshalRecord(r Record) ([]byte, error) {
	return json.Marshal(r)
}
