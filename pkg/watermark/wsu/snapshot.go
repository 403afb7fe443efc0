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

package wsu

import (
	"fmt"

	"github.com/flowforge/dataflow-core/pkg/dataflow/errs"
)

// SnapshotPayload is the on-disk/transmitted form of a WSU snapshot:
// watermarks keyed by external partition identifier, plus the
// fingerprint of the policy configuration that produced them.
type SnapshotPayload struct {
	PolicyFingerprint string
	Watermarks        map[string]int64
}

// Snapshot returns this instance's owned partitions' watermarks, keyed
// by externalKeys[i] (parallel to the internal partition-index
// arrays). len(externalKeys) must equal PartitionCount().
func (w *WatermarkSourceUtil) Snapshot(externalKeys []string) (SnapshotPayload, error) {
	if len(externalKeys) != len(w.watermark) {
		return SnapshotPayload{}, errs.New(errs.InvalidArgument, fmt.Sprintf(
			"snapshot: %d external keys for %d partitions", len(externalKeys), len(w.watermark)))
	}
	watermarks := make(map[string]int64, len(externalKeys))
	for i, key := range externalKeys {
		watermarks[key] = w.watermark[i]
	}
	return SnapshotPayload{PolicyFingerprint: w.policyFingerprint, Watermarks: watermarks}, nil
}

// Restore applies a broadcast snapshot: payload carries every
// partition key known at snapshot time, from every instance; this
// instance keeps only the entries keyToIndex resolves to one of its
// own partitions; the rest are silently ignored, since external
// partitions may have moved to other instances since the snapshot was
// taken. When both the snapshot and this instance carry a
// PolicyFingerprint and the two differ, the whole restore is rejected
// (an empty fingerprint on either side skips the check): an
// incompatible windowing/policy change across a restart is a contract
// violation, not a best-effort remap.
func (w *WatermarkSourceUtil) Restore(payload SnapshotPayload, keyToIndex map[string]int) error {
	if payload.PolicyFingerprint != "" && w.policyFingerprint != "" && payload.PolicyFingerprint != w.policyFingerprint {
		return errs.New(errs.ContractViolation, fmt.Sprintf(
			"restore: snapshot policy fingerprint %q is incompatible with current %q",
			payload.PolicyFingerprint, w.policyFingerprint))
	}
	for key, v := range payload.Watermarks {
		if idx, ok := keyToIndex[key]; ok && idx < len(w.watermark) {
			w.watermark[idx] = v
		}
	}
	return nil
}
