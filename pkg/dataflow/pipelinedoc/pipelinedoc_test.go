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

package pipelinedoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/dataflow-core/pkg/dataflow/planner"
)

func linearDoc() Doc {
	return Doc{
		Name: "orders",
		Transforms: []TransformDoc{
			{Name: "in", Kind: "source"},
			{Name: "paid-only", Kind: "filter", Upstream: []string{"in"}, Expression: `status == "paid"`},
			{Name: "amount", Kind: "map", Upstream: []string{"paid-only"}, Expression: "total * 100"},
			{Name: "out", Kind: "sink", Upstream: []string{"amount"}},
		},
	}
}

func TestFromDoc_PlansEndToEnd(t *testing.T) {
	p, err := FromDoc(linearDoc())
	require.NoError(t, err)
	assert.Equal(t, "orders", p.Name())

	d, err := planner.New(0).CreateDag(p)
	require.NoError(t, err)
	assert.Len(t, d.Vertices, 4)
	assert.Len(t, d.Edges, 3)
}

func TestFromDoc_UnknownUpstream(t *testing.T) {
	_, err := FromDoc(Doc{
		Name: "bad",
		Transforms: []TransformDoc{
			{Name: "m", Kind: "map", Upstream: []string{"missing"}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown upstream "missing"`)
}

func TestFromDoc_UnknownKind(t *testing.T) {
	_, err := FromDoc(Doc{
		Name: "bad",
		Transforms: []TransformDoc{
			{Name: "x", Kind: "teleport"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kind "teleport"`)
}

func TestFromDoc_WrongUpstreamCount(t *testing.T) {
	_, err := FromDoc(Doc{
		Name: "bad",
		Transforms: []TransformDoc{
			{Name: "a", Kind: "source"},
			{Name: "b", Kind: "source"},
			{Name: "m", Kind: "map", Upstream: []string{"a", "b"}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires exactly 1 upstream")
}

func TestFromViper_YAML(t *testing.T) {
	doc := `
name: orders
transforms:
  - name: in
    kind: source
  - name: out
    kind: sink
    upstream: [in]
`
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	p, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "orders", p.Name())
	assert.Len(t, p.Transforms(), 2)
}

func TestRenderPlanReport(t *testing.T) {
	p, err := FromDoc(linearDoc())
	require.NoError(t, err)
	d, err := planner.New(0).CreateDag(p)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, RenderPlanReport(&sb, p.Name(), d))
	out := sb.String()
	assert.Contains(t, out, "pipeline: orders")
	assert.Contains(t, out, "vertices (4):")
	assert.Contains(t, out, "edges (3):")
	assert.Contains(t, out, "amount[0] -> out[0] (ALLTOONE)")
}
