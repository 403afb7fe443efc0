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

// ThrottlingEmissionPolicy suppresses candidates that haven't advanced
// by at least MinAdvanceMillis past the last emitted watermark, to cut
// down on chatty small-step emissions downstream. Because the
// comparison is always against lastEmitted (not the last-seen
// candidate), a stream that keeps inching forward eventually crosses
// the threshold, so monotone progress never stalls.
type ThrottlingEmissionPolicy struct {
	MinAdvanceMillis int64
}

func (t ThrottlingEmissionPolicy) ShouldEmit(candidate, lastEmitted int64) bool {
	if candidate <= lastEmitted {
		return false
	}
	if lastEmitted == minInt64 {
		// nothing emitted yet; candidate-lastEmitted would overflow.
		return true
	}
	return candidate-lastEmitted >= t.MinAdvanceMillis
}
