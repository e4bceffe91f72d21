/*
 * Copyright 2018 The Sugarkube Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/sugarkube/clusterctl/internal/pkg/config"
	"github.com/sugarkube/clusterctl/internal/pkg/gate"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
	"github.com/sugarkube/clusterctl/internal/pkg/printer"
	"github.com/sugarkube/clusterctl/internal/pkg/runner"
	"github.com/sugarkube/clusterctl/internal/pkg/workflow"
)

const longUsage = `clusterctl is an interactive wrapper that stands up and tears down
Kubernetes clusters.

Each subcommand is a run-book. Before every command it runs you'll be shown
the command and the directory it'll run in, and asked whether to execute it,
skip it or exit. If a command doesn't behave as expected you'll be warned and
asked whether to continue.

Paths to the terraforming, kubernetes-deployments and secure manifests repos
and the AWS profiles to use are read from a TOML config file, by default:

  ~/.config/clusterctl/config.toml

Any value in the config file can also be set with an env var prefixed with
CLUSTERCTL_, e.g. CLUSTERCTL_INFRA_PROFILE.
`

var rootCommand *cobra.Command

// options shared by every subcommand
type rootOptions struct {
	configPath   string
	verbose      bool
	logLevel     string
	jsonLogs     bool
	noColor      bool
	clusterID    string
	infraProfile string
	v1Profile    string
}

func NewCommand(name string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           name,
		Short:         "Interactive wrapper that stands up and tears down Kubernetes",
		Long:          longUsage,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.ConfigureLogger(opts.logLevel, opts.jsonLogs)
			} else {
				log.ConfigureLogger("none", opts.jsonLogs)
			}

			printer.SetOutput(cmd.OutOrStdout())
			printer.SetPlain(opts.noColor)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "path to config.toml")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output/logging")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level. One of none|trace|debug|info|warn|error|fatal")
	f.BoolVar(&opts.jsonLogs, "json-logs", false, "write logs as JSON")
	f.BoolVar(&opts.noColor, "no-color", false, "don't colour output")
	f.StringVar(&opts.clusterID, "cluster", "", "cluster id, e.g. development0. You'll be asked to pick one if it isn't given")
	f.StringVar(&opts.infraProfile, "infra-profile", "", "AWS profile for the infra account, overriding the config file")
	f.StringVar(&opts.v1Profile, "v1-profile", "", "AWS profile for the v1 account, overriding the config file")

	cmd.AddCommand(
		newLaunchClusterCmd(opts),
		newDestroyClusterCmd(opts),
		newDestroyIngressCmd(opts),
		newNamespaceInitCmd(opts),
		newArgoInitCmd(opts),
		newCacheAssetsCmd(opts),
		newToolCheckCmd(),
		newCompletionsCommand(),
		newVersionCommand(),
	)

	rootCommand = cmd

	return cmd
}

// Loads the config file, applies CLI overrides and builds a workflow that
// prompts on the terminal
func (o *rootOptions) workflow() (*workflow.Workflow, error) {
	overrides := &config.Config{
		InfraProfile: o.infraProfile,
		V1Profile:    o.v1Profile,
	}

	conf, err := config.Load(config.NewViper(), o.configPath, overrides)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	r := runner.New(gate.NewHuhPrompter(), runner.NewOSSpawner())

	return workflow.New(r, conf), nil
}

// Builds a subcommand that runs one of the cluster run-books
func newWorkflowCmd(opts *rootOptions, use string, short string, long string,
	run func(w *workflow.Workflow, clusterID string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := opts.workflow()
			if err != nil {
				return errors.WithStack(err)
			}

			err = run(w, opts.clusterID)
			if err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}
