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

package dag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasVertex(t *testing.T) {
	d := New()
	assert.False(t, d.HasVertex("a"))
	d.AddVertex(&Vertex{Name: "a"})
	assert.True(t, d.HasVertex("a"))
	assert.False(t, d.HasVertex("b"))
}

func TestAddEdge_GeneratesID(t *testing.T) {
	d := New()
	e := &Edge{FromVertex: "a", ToVertex: "b"}
	d.AddEdge(e)
	assert.NotEmpty(t, e.ID)

	withID := &Edge{ID: "fixed", FromVertex: "a", ToVertex: "b"}
	d.AddEdge(withID)
	assert.Equal(t, "fixed", withID.ID)
}

func TestJSON_DropsKeyFn(t *testing.T) {
	d := New()
	d.AddVertex(&Vertex{Name: "src", LocalParallelism: -1})
	d.AddVertex(&Vertex{Name: "agg"})
	d.AddEdge(&Edge{
		FromVertex: "src",
		ToVertex:   "agg",
		Routing:    RoutingPartitioned,
		KeyFn:      func(item any) (string, error) { return "k", nil },
	})

	out, err := d.JSON()
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `"keyed": true`)
	assert.Contains(t, s, `"routing": "partitioned"`)
	assert.False(t, strings.Contains(s, "KeyFn"), "function values never serialize")
}
