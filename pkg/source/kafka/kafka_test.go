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

package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTimestamp(t *testing.T) {
	ts, ok := extractTimestamp([]byte(`{"eventTime": 1700000000000}`), "eventTime")
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000000), ts)

	ts, ok = extractTimestamp([]byte(`{"eventTime": "2023-11-14T22:13:20Z"}`), "eventTime")
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000000), ts)

	_, ok = extractTimestamp([]byte(`{"other": 1}`), "eventTime")
	assert.False(t, ok)

	_, ok = extractTimestamp([]byte(`not json`), "eventTime")
	assert.False(t, ok)

	_, ok = extractTimestamp([]byte(`{"eventTime": true}`), "eventTime")
	assert.False(t, ok)
}

func TestMessageTimestamp(t *testing.T) {
	assert.Equal(t, int64(42), MessageTimestamp(Message{EventTime: 42}))
}
