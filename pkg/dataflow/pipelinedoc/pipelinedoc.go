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

// Package pipelinedoc loads a declarative pipeline document (yaml or
// json, via viper) and builds the pkg/dataflow/pipeline.Pipeline it
// describes. It is cmd/dagplan and cmd/planservice's on-disk stand-in
// for a fluent builder surface: the document format exists so the CLI
// has something concrete to plan, and makes no promise of stability.
package pipelinedoc

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/flowforge/dataflow-core/pkg/dataflow/dag"
	"github.com/flowforge/dataflow-core/pkg/dataflow/pipeline"
	"github.com/flowforge/dataflow-core/pkg/dataflow/transform"
)

// TransformDoc is one transform entry in a pipeline document.
type TransformDoc struct {
	Name       string   `mapstructure:"name"`
	Kind       string   `mapstructure:"kind"`
	Upstream   []string `mapstructure:"upstream"`
	Expression string   `mapstructure:"expr"`
}

// Doc is the raw, unresolved shape of a pipeline document.
type Doc struct {
	Name       string         `mapstructure:"name"`
	Transforms []TransformDoc `mapstructure:"transforms"`
}

// Pipeline wraps a resolved pipeline.Pipeline. It implements
// planner.AdjacencyProvider via the embedded Pipeline's Adjacency, and
// the optional namedAdjacencyProvider via the embedded Pipeline's Name
// (set from the document's top-level name field).
type Pipeline struct {
	*pipeline.Pipeline
}

// FromViper reads a Doc out of v and resolves it into a Pipeline whose
// transforms are wired by the Upstream name references.
func FromViper(v *viper.Viper) (*Pipeline, error) {
	var doc Doc
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("unmarshaling pipeline document: %w", err)
	}
	return FromDoc(doc)
}

// FromDoc resolves doc's transform entries, in declared order, into a
// wired pipeline.Pipeline. Every Upstream name must refer to a
// previously declared transform (forward references are rejected,
// matching a document author's natural top-to-bottom reading order).
func FromDoc(doc Doc) (*Pipeline, error) {
	p := pipeline.New(doc.Name)
	byName := make(map[string]transform.Transform, len(doc.Transforms))

	for _, td := range doc.Transforms {
		upstream, err := resolveUpstream(td, byName)
		if err != nil {
			return nil, err
		}
		t, err := build(td, upstream)
		if err != nil {
			return nil, err
		}
		byName[td.Name] = t
		p.Add(t)
	}

	return &Pipeline{Pipeline: p}, nil
}

func resolveUpstream(td TransformDoc, byName map[string]transform.Transform) ([]transform.Transform, error) {
	upstream := make([]transform.Transform, 0, len(td.Upstream))
	for _, name := range td.Upstream {
		u, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("transform %q: unknown upstream %q (must be declared earlier in the document)", td.Name, name)
		}
		upstream = append(upstream, u)
	}
	return upstream, nil
}

func build(td TransformDoc, upstream []transform.Transform) (transform.Transform, error) {
	switch td.Kind {
	case "source":
		return transform.NewSource(td.Name, nil, transform.WatermarkGenerationParams{}), nil
	case "map":
		fn, err := mapFn(td.Expression)
		if err != nil {
			return nil, fmt.Errorf("transform %q: %w", td.Name, err)
		}
		return requireOneUpstream(td, upstream, func(u transform.Transform) transform.Transform {
			return transform.NewMap(td.Name, u, fn)
		})
	case "filter":
		fn, err := filterFn(td.Expression)
		if err != nil {
			return nil, fmt.Errorf("transform %q: %w", td.Name, err)
		}
		return requireOneUpstream(td, upstream, func(u transform.Transform) transform.Transform {
			return transform.NewFilter(td.Name, u, fn)
		})
	case "merge":
		if len(upstream) < 1 {
			return nil, fmt.Errorf("transform %q: merge requires at least 1 upstream", td.Name)
		}
		return transform.NewMerge(td.Name, upstream), nil
	case "sink":
		return requireOneUpstream(td, upstream, func(u transform.Transform) transform.Transform {
			return transform.NewSink(td.Name, u, nil)
		})
	default:
		return nil, fmt.Errorf("transform %q: unknown kind %q", td.Name, td.Kind)
	}
}

func requireOneUpstream(td TransformDoc, upstream []transform.Transform, build func(transform.Transform) transform.Transform) (transform.Transform, error) {
	if len(upstream) != 1 {
		return nil, fmt.Errorf("transform %q: kind %q requires exactly 1 upstream, got %d", td.Name, td.Kind, len(upstream))
	}
	return build(upstream[0]), nil
}

func mapFn(expression string) (transform.MapFn, error) {
	if expression == "" {
		return func(item map[string]any) (any, error) { return item, nil }, nil
	}
	return transform.ExprMapFn(expression)
}

func filterFn(expression string) (transform.FilterFn, error) {
	if expression == "" {
		return func(item map[string]any) (bool, error) { return true, nil }, nil
	}
	return transform.ExprFilterFn(expression)
}

// RenderPlanReport renders a one-line-per-vertex/edge human-readable
// report of d to w.
func RenderPlanReport(w io.Writer, pipelineName string, d *dag.DAG) error {
	report, err := renderPlanReportText(pipelineName, d)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(report))
	return err
}
