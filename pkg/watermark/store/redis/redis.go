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

// Package redis implements store.SnapshotStore over a Redis hash, as
// an alternative to the JetStream backend for deployments already
// running Redis.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/flowforge/dataflow-core/pkg/watermark/store"
)

// Store is a store.SnapshotStore backed by a single Redis hash, one
// field per external partition key.
type Store struct {
	client   *goredis.Client
	hashName string
}

// NewStore returns a Store that keeps every watermark under
// hashName's fields in the given Redis instance.
func NewStore(opts *goredis.Options, hashName string) *Store {
	return &Store{client: goredis.NewClient(opts), hashName: hashName}
}

func (s *Store) PutWatermark(externalKey string, watermark int64) error {
	ctx := context.Background()
	if err := s.client.HSet(ctx, s.hashName, externalKey, watermark).Err(); err != nil {
		return fmt.Errorf("hset %s.%s: %w", s.hashName, externalKey, err)
	}
	return nil
}

func (s *Store) GetAllWatermarks() (map[string]int64, error) {
	ctx := context.Background()
	raw, err := s.client.HGetAll(ctx, s.hashName).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.hashName, err)
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		var wm int64
		if _, err := fmt.Sscanf(v, "%d", &wm); err != nil {
			continue
		}
		out[k] = wm
	}
	return out, nil
}

func (s *Store) DeleteKey(externalKey string) error {
	ctx := context.Background()
	if err := s.client.HDel(ctx, s.hashName, externalKey).Err(); err != nil {
		return fmt.Errorf("hdel %s.%s: %w", s.hashName, externalKey, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

var _ store.SnapshotStore = (*Store)(nil)
