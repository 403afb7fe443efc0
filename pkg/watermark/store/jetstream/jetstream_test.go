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

package jetstream

import (
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startJetStream(t *testing.T) *natsserver.Server {
	t.Helper()
	opts := &natsserver.Options{
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	}
	s, err := natsserver.NewServer(opts)
	require.NoError(t, err)
	go s.Start()
	require.True(t, s.ReadyForConnections(10*time.Second), "embedded nats server did not come up")
	t.Cleanup(s.Shutdown)
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := startJetStream(t)

	store, err := NewStore(s.ClientURL(), "watermarks")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.PutWatermark("topic-0", 100))
	require.NoError(t, store.PutWatermark("topic-1", 250))
	require.NoError(t, store.PutWatermark("topic-0", 150), "overwrite keeps only the latest")

	all, err := store.GetAllWatermarks()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"topic-0": 150, "topic-1": 250}, all)

	require.NoError(t, store.DeleteKey("topic-1"))
	all, err = store.GetAllWatermarks()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"topic-0": 150}, all)
}

func TestStore_EmptyBucket(t *testing.T) {
	s := startJetStream(t)

	store, err := NewStore(s.ClientURL(), "empty")
	require.NoError(t, err)
	defer store.Close()

	all, err := store.GetAllWatermarks()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_NegativeWatermark(t *testing.T) {
	s := startJetStream(t)

	store, err := NewStore(s.ClientURL(), "negatives")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.PutWatermark("p", -9223372036854775808))
	all, err := store.GetAllWatermarks()
	require.NoError(t, err)
	assert.Equal(t, int64(-9223372036854775808), all["p"])
}
