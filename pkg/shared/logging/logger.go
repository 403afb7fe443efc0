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

// Package logging provides a context-carried structured logger shared
// by the planner, the watermark utilities and the cmd/ entrypoints.
package logging

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKey struct{}

var baseLogger *zap.SugaredLogger

func init() {
	level := zap.NewAtomicLevel()
	if os.Getenv("DATAFLOW_DEBUG") != "" {
		level.SetLevel(zapcore.DebugLevel)
	}
	cfg := zap.Config{
		Level:            level,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	baseLogger = l.Sugar()
}

// NewLogger returns the package default logger.
func NewLogger() *zap.SugaredLogger {
	return baseLogger
}

// FromContext extracts a logger previously attached with WithLogger,
// falling back to the package default.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return baseLogger
	}
	if l, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return l
	}
	return baseLogger
}

// WithLogger returns a child context carrying l.
func WithLogger(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}
