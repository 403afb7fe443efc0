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

// Package store defines where a WatermarkSourceUtil's per-partition
// snapshot lives between a shutdown and a restore, plus two concrete
// backends (JetStream KV and Redis) in subpackages.
package store

// SnapshotStore holds a WatermarkSourceUtil's per-partition watermarks,
// keyed by external-partition identifier. Every key is broadcast to
// every processor instance at restore time; an instance
// keeps only the keys it resolves to one of its own owned partitions.
type SnapshotStore interface {
	// PutWatermark persists watermark under externalKey, overwriting
	// any previous value.
	PutWatermark(externalKey string, watermark int64) error
	// GetAllWatermarks returns every key this store holds, for every
	// instance to broadcast-read at restore time.
	GetAllWatermarks() (map[string]int64, error)
	// DeleteKey removes externalKey, e.g. when its partition is
	// permanently retired.
	DeleteKey(externalKey string) error
	// Close releases the store's underlying connection/handle.
	Close() error
}
