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

// Command dagplan loads a pipeline document and prints the DAG the
// planner lowers it into ("plan"), or re-plans and prints it each time
// the document changes on disk ("watch"). It is a thin cobra/viper CLI
// around pkg/dataflow/planner.
package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flowforge/dataflow-core/pkg/dataflow/pipelinedoc"
	"github.com/flowforge/dataflow-core/pkg/dataflow/planner"
	"github.com/flowforge/dataflow-core/pkg/shared/logging"
)

var cfgFile string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "dagplan",
		Short: "Plan a pipeline document into an executable DAG",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a pipeline document (yaml/json)")
	root.AddCommand(newPlanCommand())
	root.AddCommand(newWatchCommand())
	return root
}

func loadPipeline() (*pipelinedoc.Pipeline, error) {
	if cfgFile == "" {
		return nil, fmt.Errorf("--config is required")
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading pipeline document %q: %w", cfgFile, err)
	}
	doc, err := pipelinedoc.FromViper(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("parsing pipeline document: %w", err)
	}
	return doc, nil
}

func newPlanCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build the DAG and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadPipeline()
			if err != nil {
				return err
			}
			p := planner.New(0)
			result, err := p.CreateDag(doc)
			if err != nil {
				return fmt.Errorf("creating dag: %w", err)
			}
			if asJSON {
				out, err := result.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}
			return pipelinedoc.RenderPlanReport(os.Stdout, doc.Name(), result)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the DAG as JSON instead of a text report")
	return cmd
}

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-plan and print the DAG every time --config changes on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger()
			if cfgFile == "" {
				return fmt.Errorf("--config is required")
			}
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("reading pipeline document %q: %w", cfgFile, err)
			}

			plan := func() {
				doc, err := pipelinedoc.FromViper(viper.GetViper())
				if err != nil {
					log.Errorw("parsing pipeline document failed", "error", err)
					return
				}
				result, err := planner.New(0).CreateDag(doc)
				if err != nil {
					log.Errorw("planning failed", "error", err)
					return
				}
				_ = pipelinedoc.RenderPlanReport(os.Stdout, doc.Name(), result)
			}
			plan()

			viper.OnConfigChange(func(e fsnotify.Event) {
				log.Infow("pipeline document changed, replanning", "file", e.Name)
				plan()
			})
			viper.WatchConfig()

			select {}
		},
	}
}
