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
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/flowforge/dataflow-core/pkg/dataflow/dag"
)

// planReportTemplate renders a DAG the way `dagplan plan` prints it by
// default: one line per vertex, then one line per edge, formatted with
// sprig's template helpers.
const planReportTemplate = `pipeline: {{ .PipelineName }}
vertices ({{ len .DAG.Vertices }}):
{{- range .DAG.Vertices }}
  - {{ .Name | trunc 40 }}{{ if .Peeked }} (peeked){{ end }}{{ if gt .LocalParallelism 0 }} x{{ .LocalParallelism }}{{ end }}
{{- end }}
edges ({{ len .DAG.Edges }}):
{{- range .DAG.Edges }}
  - {{ .FromVertex }}[{{ .FromOrdinal }}] -> {{ .ToVertex }}[{{ .ToOrdinal }}] ({{ .Routing | toString | upper }}{{ if .Distributed }}, distributed{{ end }})
{{- end }}
`

var planReport = template.Must(
	template.New("planReport").Funcs(sprig.TxtFuncMap()).Parse(planReportTemplate),
)

func renderPlanReportText(pipelineName string, d *dag.DAG) (string, error) {
	var sb strings.Builder
	data := struct {
		PipelineName string
		DAG          *dag.DAG
	}{PipelineName: pipelineName, DAG: d}
	if err := planReport.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
