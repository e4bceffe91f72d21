/*
 * Copyright 2019 The Sugarkube Authors
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

package workflow

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/skratchdot/open-golang/open"
	"github.com/sugarkube/clusterctl/internal/pkg/assets"
	"github.com/sugarkube/clusterctl/internal/pkg/cluster"
	"github.com/sugarkube/clusterctl/internal/pkg/config"
	"github.com/sugarkube/clusterctl/internal/pkg/gate"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
	"github.com/sugarkube/clusterctl/internal/pkg/printer"
	"github.com/sugarkube/clusterctl/internal/pkg/runner"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
	"github.com/sugarkube/clusterctl/internal/pkg/tools"
	"github.com/sugarkube/clusterctl/internal/pkg/utils"
)

// Terraform projects under the terraforming repo
const (
	TectonicProject = "projects/kubernetes-tectonic"
	IngressProject  = "projects/kubernetes-ingress"
)

const executePrompt = "Execute command?"

const intro = `
This will step you through %s a cluster.
1. You will be prompted before each step
2. You will be shown the commands that will be run
3. STDOUT and STDERR will be printed to your console, as if you'd run the commands manually.
`

// Workflow runs the operational run-books. Every state-changing command goes
// through the runner so the operator confirms it first.
type Workflow struct {
	Runner *runner.Runner
	Config *config.Config
	// runs read-only discovery commands
	Query utils.QueryFunc
	// opens a URL in the operator's browser
	OpenURL func(url string) error
}

func New(r *runner.Runner, conf *config.Config) *Workflow {
	return &Workflow{
		Runner:  r,
		Config:  conf,
		Query:   utils.Query,
		OpenURL: open.Run,
	}
}

func (w *Workflow) prompter() gate.Prompter {
	return w.Runner.Prompter()
}

// Runs a single step built by one of the tool builders
func (w *Workflow) run(s step.Step, err error) (runner.Outcome, error) {
	if err != nil {
		return runner.Outcome{}, errors.WithStack(err)
	}

	outcome, err := w.Runner.Run(s)
	if err != nil {
		return outcome, errors.WithStack(err)
	}

	return outcome, nil
}

func (w *Workflow) say(format string, args ...interface{}) error {
	_, err := printer.Fprintf(format+"\n", args...)
	return errors.WithStack(err)
}

func (w *Workflow) resolveCluster(clusterID string) (string, error) {
	clusterID, err := cluster.Resolve(w.prompter(), clusterID, w.Config.Clusters)
	if err != nil {
		return "", errors.WithStack(err)
	}

	log.Logger.Infof("Using cluster '%s'", clusterID)

	return clusterID, nil
}

func (w *Workflow) terraform(project string, profile string) (tools.Terraform, error) {
	planArgs, err := w.Config.PlanArgs()
	if err != nil {
		return tools.Terraform{}, errors.WithStack(err)
	}

	return tools.Terraform{
		Dir:      filepath.Join(w.Config.TerraformingPath, project),
		Profile:  profile,
		PlanArgs: planArgs,
	}, nil
}

// Downloads the cluster's kubeconfig and returns a session using it
func (w *Workflow) fetchKubeconfig(clusterID string) (cluster.Session, error) {
	fetcher := assets.Fetcher{
		Runner:    w.Runner,
		Query:     w.Query,
		CachePath: w.Config.AssetsCachePath,
		Profile:   w.Config.InfraProfile,
	}

	session, err := fetcher.Fetch(clusterID)
	if err != nil {
		return cluster.Session{}, errors.WithStack(err)
	}

	return session, nil
}
