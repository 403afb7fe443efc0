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

// Command planservice is a long-lived HTTP service around the planner:
// it loads a pipeline document, plans it, re-plans on a cron schedule
// so document edits are picked up, and serves the current DAG, a text
// report, watermark status of a demo source and Prometheus metrics.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/flowforge/dataflow-core/pkg/dataflow/dag"
	"github.com/flowforge/dataflow-core/pkg/dataflow/pipelinedoc"
	"github.com/flowforge/dataflow-core/pkg/dataflow/planner"
	"github.com/flowforge/dataflow-core/pkg/shared/logging"
	"github.com/flowforge/dataflow-core/pkg/source/generator"
	"github.com/flowforge/dataflow-core/pkg/watermark/policy"
	"github.com/flowforge/dataflow-core/pkg/watermark/wsu"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		cfgFile        string
		port           int
		replanSchedule string
		staticDir      string
		demoSource     bool
	)
	cmd := &cobra.Command{
		Use:   "planservice",
		Short: "Serve a pipeline document's planned DAG over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile == "" {
				return fmt.Errorf("--config is required")
			}
			svc, err := newService(cfgFile, demoSource)
			if err != nil {
				return err
			}
			return svc.run(cmd.Context(), port, replanSchedule, staticDir)
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "path to a pipeline document (yaml/json)")
	cmd.Flags().IntVar(&port, "port", 8080, "HTTP listen port")
	cmd.Flags().StringVar(&replanSchedule, "replan-schedule", "@every 30s", "cron schedule for re-reading and re-planning the pipeline document")
	cmd.Flags().StringVar(&staticDir, "static-dir", "", "directory of static plan-viewer assets to serve at /")
	cmd.Flags().BoolVar(&demoSource, "demo-source", false, "run an in-process generator source and expose its watermark status")
	return cmd
}

// service holds the latest successfully planned DAG, swapped whole on
// every replan so readers never observe a half-built plan.
type service struct {
	cfgFile string

	mu           sync.RWMutex
	pipelineName string
	current      *dag.DAG
	plannedAt    time.Time

	// planMu serializes replan: the Planner is single-threaded by
	// contract, and cron firings may overlap a slow document read.
	planMu  sync.Mutex
	planner *planner.Planner
	gen     *generator.Generator
	genWSU  *wsu.WatermarkSourceUtil
}

func newService(cfgFile string, demoSource bool) (*service, error) {
	svc := &service{cfgFile: cfgFile, planner: planner.New(0)}
	if err := svc.replan(); err != nil {
		return nil, err
	}
	if demoSource {
		w := wsu.New(wsu.Config{
			TimestampFn:        generator.ItemTimestamp,
			NewWatermarkPolicy: func() policy.WatermarkPolicy { return policy.NewLimitingLagPolicy(0) },
			IdleTimeoutMillis:  5000,
			VertexName:         "demo-generator",
		}, 1, time.Now().UnixNano())
		svc.genWSU = w
		svc.gen = generator.New(5, 2, 8, time.Second, w)
	}
	return svc, nil
}

func (s *service) replan() error {
	s.planMu.Lock()
	defer s.planMu.Unlock()
	v := viper.New()
	v.SetConfigFile(s.cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading pipeline document %q: %w", s.cfgFile, err)
	}
	doc, err := pipelinedoc.FromViper(v)
	if err != nil {
		return fmt.Errorf("parsing pipeline document: %w", err)
	}
	result, err := s.planner.CreateDag(doc)
	if err != nil {
		return fmt.Errorf("creating dag: %w", err)
	}
	s.mu.Lock()
	s.pipelineName = doc.Name()
	s.current = result
	s.plannedAt = time.Now()
	s.mu.Unlock()
	return nil
}

func (s *service) run(ctx context.Context, port int, replanSchedule, staticDir string) error {
	log := logging.NewLogger()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New()
	if _, err := c.AddFunc(replanSchedule, func() {
		if err := s.replan(); err != nil {
			log.Errorw("replan failed, keeping previous plan", "error", err)
			return
		}
		log.Infow("replanned pipeline document", "file", s.cfgFile)
	}); err != nil {
		return fmt.Errorf("invalid replan schedule %q: %w", replanSchedule, err)
	}
	c.Start()
	defer c.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if staticDir != "" {
		router.Use(static.Serve("/", static.LocalFile(staticDir, false)))
	}
	router.GET("/api/v1/dag", s.handleDag)
	router.GET("/api/v1/report", s.handleReport)
	router.GET("/api/v1/watermark", s.handleWatermark)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(gc *gin.Context) { gc.String(http.StatusOK, "ok") })

	server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: router}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Infow("planservice listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if s.gen != nil {
		group.Go(func() error {
			for range s.gen.Start(ctx) {
				// drain; the demo source exists only so /api/v1/watermark
				// has live WSU state to report.
			}
			return nil
		})
	}
	return group.Wait()
}

func (s *service) handleDag(gc *gin.Context) {
	s.mu.RLock()
	d := s.current
	s.mu.RUnlock()
	out, err := d.JSON()
	if err != nil {
		gc.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	gc.Data(http.StatusOK, "application/json", out)
}

func (s *service) handleReport(gc *gin.Context) {
	s.mu.RLock()
	name, d, at := s.pipelineName, s.current, s.plannedAt
	s.mu.RUnlock()
	var sb strings.Builder
	if err := pipelinedoc.RenderPlanReport(&sb, name, d); err != nil {
		gc.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	gc.String(http.StatusOK, "planned at %s\n%s", at.Format(time.RFC3339), sb.String())
}

func (s *service) handleWatermark(gc *gin.Context) {
	if s.genWSU == nil {
		gc.JSON(http.StatusNotFound, gin.H{"error": "no demo source running; start with --demo-source"})
		return
	}
	status := s.genWSU.Status()
	gc.JSON(http.StatusOK, gin.H{
		"lastEmittedWatermark": status.LastEmittedWatermark,
		"allIdle":              status.AllIdle,
	})
}
