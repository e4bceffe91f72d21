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

package tools

import (
	"fmt"

	"github.com/sugarkube/clusterctl/internal/pkg/cluster"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
)

const PlanFile = "tfplan.out"

// Terraform builds steps that run terraform in a project directory with an
// AWS profile
type Terraform struct {
	Dir     string
	Profile string
	// extra args appended to every plan
	PlanArgs []string
}

func (t Terraform) options() []step.Option {
	opts := []step.Option{step.WithDir(t.Dir)}
	if t.Profile != "" {
		opts = append(opts, step.WithEnv(cluster.AWSProfileEnvVar, t.Profile))
	}
	return opts
}

func (t Terraform) command(prompt string, expect step.Expectation,
	args ...string) (step.Step, error) {
	argv := append([]string{TerraformBinary}, args...)
	return newStep(prompt, expect, argv, t.options()...)
}

// Returns the name of the vars file for a workspace
func VarsFile(workspace string) string {
	return fmt.Sprintf("%s.tfvars", workspace)
}

func (t Terraform) GetUpdate(prompt string, expect step.Expectation) (step.Step, error) {
	return t.command(prompt, expect, "get", "-update")
}

func (t Terraform) WorkspaceSelect(prompt string, expect step.Expectation,
	workspace string) (step.Step, error) {
	return t.command(prompt, expect, "workspace", "select", workspace)
}

func (t Terraform) WorkspaceShow(prompt string, expect step.Expectation) (step.Step, error) {
	return t.command(prompt, expect, "workspace", "show")
}

// Plans changes, writing the plan to PlanFile
func (t Terraform) Plan(prompt string, expect step.Expectation,
	varsFile string) (step.Step, error) {
	args := []string{"plan", "-out", PlanFile, "-var-file", varsFile}
	args = append(args, t.PlanArgs...)
	return t.command(prompt, expect, args...)
}

// Plans destroying everything. With -detailed-exitcode terraform exits 0 for
// no changes, 2 for changes and 1 for errors.
func (t Terraform) PlanDestroy(prompt string, expect step.Expectation,
	varsFile string) (step.Step, error) {
	args := []string{"plan", "-out", PlanFile, "-var-file", varsFile,
		"-destroy", "-detailed-exitcode"}
	args = append(args, t.PlanArgs...)
	return t.command(prompt, expect, args...)
}

// Applies PlanFile
func (t Terraform) Apply(prompt string, expect step.Expectation) (step.Step, error) {
	return t.command(prompt, expect, "apply", PlanFile)
}

func (t Terraform) StateRm(prompt string, expect step.Expectation,
	addresses ...string) (step.Step, error) {
	args := append([]string{"state", "rm"}, addresses...)
	return t.command(prompt, expect, args...)
}
