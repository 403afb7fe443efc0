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

package planner

import "fmt"

// vertexName returns the first untaken candidate of
// the form baseName+suffix, baseName-2+suffix, baseName-3+suffix, ....
// Correctness depends only on p.dag.HasVertex, which is exact for the
// DAG under construction; p.nameIndexHint only remembers, per
// (baseName, suffix), the index to start probing from, and is never
// the source of truth.
func (p *Planner) vertexName(baseName, suffix string) string {
	start := 1
	if v, ok := p.nameIndexHint.Get(baseName + "\x00" + suffix); ok {
		start = v.(int)
	}
	for index := start; ; index++ {
		candidate := baseName + suffix
		if index > 1 {
			candidate = fmt.Sprintf("%s-%d%s", baseName, index, suffix)
		}
		if !p.dag.HasVertex(candidate) {
			p.nameIndexHint.Add(baseName+"\x00"+suffix, index+1)
			return candidate
		}
	}
}

// VertexName is the PlannerOps-facing entry point transforms call.
func (p *Planner) VertexName(baseName, suffix string) string {
	return p.vertexName(baseName, suffix)
}
