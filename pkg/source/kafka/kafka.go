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

// Package kafka is a concrete Source processor-supplier reading a
// Kafka topic's partitions with IBM/sarama, feeding every consumed
// message through a WatermarkSourceUtil keyed by Kafka partition
// index, so event time keeps advancing even when some partitions go
// quiet.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/araddon/dateparse"
	"go.uber.org/zap"

	"github.com/flowforge/dataflow-core/pkg/shared/logging"
	"github.com/flowforge/dataflow-core/pkg/watermark/wsu"
)

// Message is one consumed Kafka record, wrapped for delivery alongside
// its watermark by wsu.WatermarkSourceUtil.
type Message struct {
	Topic     string
	Partition int32
	Offset    int64
	Key       []byte
	Value     []byte
	EventTime int64
}

// Source consumes one or more partitions of a single Kafka topic and
// routes every message through a WatermarkSourceUtil keyed by Kafka
// partition index.
type Source struct {
	Brokers []string
	Topic   string

	// TimestampField, if set, extracts the event timestamp from a
	// string/number field named TimestampField in the message's JSON
	// value instead of using the Kafka broker's own append time.
	TimestampField string

	wsu      *wsu.WatermarkSourceUtil
	consumer sarama.Consumer
	log      *zap.SugaredLogger
}

// New builds a Source; Brokers/Topic must be set before Start.
func New(brokers []string, topic string, w *wsu.WatermarkSourceUtil) *Source {
	return &Source{Brokers: brokers, Topic: topic, wsu: w, log: logging.NewLogger()}
}

// MessageTimestamp is the wsu.TimestampFn for Messages produced by
// Source, in epoch milliseconds.
func MessageTimestamp(item any) int64 {
	return item.(Message).EventTime
}

// Start connects to Brokers and begins consuming every partition of
// Topic from the oldest available offset, emitting HandleEvent output
// batches on the returned channel until ctx is canceled.
func (s *Source) Start(ctx context.Context) (<-chan []any, error) {
	config := sarama.NewConfig()
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumer(s.Brokers, config)
	if err != nil {
		return nil, fmt.Errorf("connecting to kafka brokers %v: %w", s.Brokers, err)
	}
	s.consumer = consumer

	partitions, err := consumer.Partitions(s.Topic)
	if err != nil {
		consumer.Close()
		return nil, fmt.Errorf("listing partitions for topic %q: %w", s.Topic, err)
	}

	if grown := len(partitions); grown > s.wsu.PartitionCount() {
		if err := s.wsu.IncreasePartitionCount(time.Now().UnixNano(), grown); err != nil {
			consumer.Close()
			return nil, err
		}
	}

	// per-partition goroutines only forward raw messages; the single
	// dispatch goroutine below is the sole owner of the
	// WatermarkSourceUtil, which is not safe for concurrent use.
	msgs := make(chan *sarama.ConsumerMessage, 256)
	out := make(chan []any, 256)
	var readers sync.WaitGroup
	for _, p := range partitions {
		pc, err := consumer.ConsumePartition(s.Topic, p, sarama.OffsetOldest)
		if err != nil {
			consumer.Close()
			return nil, fmt.Errorf("consuming partition %d of topic %q: %w", p, s.Topic, err)
		}
		readers.Add(1)
		go s.consumePartition(ctx, pc, p, msgs, &readers)
	}

	go func() {
		readers.Wait()
		close(msgs)
	}()
	go s.dispatch(ctx, msgs, out)
	go func() {
		<-ctx.Done()
		_ = consumer.Close()
	}()

	return out, nil
}

func (s *Source) consumePartition(ctx context.Context, pc sarama.PartitionConsumer, partitionIdx int32, msgs chan<- *sarama.ConsumerMessage, readers *sync.WaitGroup) {
	defer readers.Done()
	defer pc.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pc.Messages():
			if !ok {
				return
			}
			select {
			case <-ctx.Done():
				return
			case msgs <- msg:
			}
		case err, ok := <-pc.Errors():
			if !ok {
				return
			}
			s.log.Warnw("kafka consume error", zap.Error(err), "partition", partitionIdx)
		}
	}
}

func (s *Source) dispatch(ctx context.Context, msgs <-chan *sarama.ConsumerMessage, out chan<- []any) {
	defer close(out)
	for msg := range msgs {
		s.handle(ctx, msg, msg.Partition, out)
	}
}

func (s *Source) handle(ctx context.Context, msg *sarama.ConsumerMessage, partitionIdx int32, out chan<- []any) {
	eventTime := msg.Timestamp.UnixMilli()
	if s.TimestampField != "" {
		if ts, ok := extractTimestamp(msg.Value, s.TimestampField); ok {
			eventTime = ts
		}
	}
	item := Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       msg.Key,
		Value:     msg.Value,
		EventTime: eventTime,
	}
	batch, err := s.wsu.HandleEvent(time.Now().UnixNano(), item, true, int(partitionIdx))
	if err != nil {
		s.log.Warnw("handleEvent failed", zap.Error(err))
		return
	}
	select {
	case <-ctx.Done():
	case out <- batch:
	}
}

// extractTimestamp decodes a JSON object payload and reads field from
// it: a number is taken as epoch milliseconds, a string is parsed with
// dateparse's lenient string-timestamp support. A payload that is not
// a JSON object, a missing field, or an unparsable value reports
// false rather than an error, so the consume loop carries on.
func extractTimestamp(value []byte, field string) (int64, bool) {
	var doc map[string]any
	if err := json.Unmarshal(value, &doc); err != nil {
		return 0, false
	}
	raw, ok := doc[field]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int64(v), true
	case string:
		t, err := dateparse.ParseAny(v)
		if err != nil {
			return 0, false
		}
		return t.UnixMilli(), true
	default:
		return 0, false
	}
}
