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

package transform

import "github.com/spaolacci/murmur3"

// DefaultShardFor hashes a partitioning key into one of numShards
// buckets. It is the default used by Group/CoGroup's partitioned
// edges when the runtime needs a stable shard index from
// a string key rather than routing by key identity directly.
func DefaultShardFor(key string, numShards int) int {
	if numShards <= 0 {
		return 0
	}
	h := murmur3.Sum32([]byte(key))
	return int(h) % numShards
}
