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

// Package jetstream implements store.SnapshotStore over a NATS
// JetStream key-value bucket.
package jetstream

import (
	"encoding/binary"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/flowforge/dataflow-core/pkg/watermark/store"
)

// Store is a store.SnapshotStore backed by a JetStream KV bucket.
type Store struct {
	nc *nats.Conn
	kv nats.KeyValue
}

// NewStore connects to natsURL and binds to (creating if absent) a KV
// bucket named bucket, with history entries limited to 1 per key:
// only the latest watermark per partition is ever needed.
func NewStore(natsURL, bucket string) (*Store, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %q: %w", natsURL, err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("acquiring jetstream context: %w", err)
	}
	kv, err := js.KeyValue(bucket)
	if err != nil {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{Bucket: bucket, History: 1})
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("creating/binding kv bucket %q: %w", bucket, err)
		}
	}
	return &Store{nc: nc, kv: kv}, nil
}

func (s *Store) PutWatermark(externalKey string, watermark int64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(watermark))
	_, err := s.kv.Put(externalKey, buf[:])
	if err != nil {
		return fmt.Errorf("putting watermark for key %q: %w", externalKey, err)
	}
	return nil
}

func (s *Store) GetAllWatermarks() (map[string]int64, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		if err == nats.ErrNoKeysFound {
			return map[string]int64{}, nil
		}
		return nil, fmt.Errorf("listing kv keys: %w", err)
	}
	out := make(map[string]int64, len(keys))
	for _, key := range keys {
		entry, err := s.kv.Get(key)
		if err != nil {
			return nil, fmt.Errorf("getting kv entry %q: %w", key, err)
		}
		if len(entry.Value()) < 8 {
			continue
		}
		out[key] = int64(binary.LittleEndian.Uint64(entry.Value()))
	}
	return out, nil
}

func (s *Store) DeleteKey(externalKey string) error {
	if err := s.kv.Delete(externalKey); err != nil {
		return fmt.Errorf("deleting kv key %q: %w", externalKey, err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.nc != nil {
		s.nc.Close()
	}
	return nil
}

var _ store.SnapshotStore = (*Store)(nil)
