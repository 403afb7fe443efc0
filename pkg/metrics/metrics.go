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

// Package metrics holds the Prometheus collectors for the planner and
// the watermark source util.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label names shared across the planner and WSU collectors.
const (
	LabelPipeline = "pipeline"
	LabelVertex   = "vertex"
)

var (
	// PlanDuration records how long Planner.CreateDag took, in
	// seconds, labeled by pipeline name.
	PlanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dataflow",
		Subsystem: "planner",
		Name:      "plan_duration_seconds",
		Help:      "Time taken by CreateDag to lower a pipeline into a DAG.",
	}, []string{LabelPipeline})

	// PlannedVertices is the vertex count of the last successfully
	// planned DAG, labeled by pipeline name.
	PlannedVertices = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "dataflow",
		Subsystem: "planner",
		Name:      "vertices",
		Help:      "Number of vertices in the most recently planned DAG.",
	}, []string{LabelPipeline})

	// PlannedEdges is the edge count of the last successfully planned
	// DAG, labeled by pipeline name.
	PlannedEdges = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "dataflow",
		Subsystem: "planner",
		Name:      "edges",
		Help:      "Number of edges in the most recently planned DAG.",
	}, []string{LabelPipeline})

	// PlanFailures counts CreateDag failures, labeled by pipeline name
	// and error kind (errs.Kind).
	PlanFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dataflow",
		Subsystem: "planner",
		Name:      "failures_total",
		Help:      "Number of CreateDag failures, by errs.Kind.",
	}, []string{LabelPipeline, "kind"})

	// WatermarkLag is the last emitted watermark's lag behind the
	// current wall clock, in milliseconds, per source vertex.
	WatermarkLag = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "dataflow",
		Subsystem: "wsu",
		Name:      "watermark_lag_millis",
		Help:      "Milliseconds between wall-clock now and the last emitted watermark.",
	}, []string{LabelPipeline, LabelVertex})

	// IdlePartitions is the number of partitions currently past their
	// idle deadline, per source vertex.
	IdlePartitions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "dataflow",
		Subsystem: "wsu",
		Name:      "idle_partitions",
		Help:      "Number of partitions currently marked idle.",
	}, []string{LabelPipeline, LabelVertex})

	// IdleMessagesEmitted counts IdleMessage sentinels emitted, per
	// source vertex.
	IdleMessagesEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dataflow",
		Subsystem: "wsu",
		Name:      "idle_messages_total",
		Help:      "Number of IdleMessage sentinels emitted.",
	}, []string{LabelPipeline, LabelVertex})
)
