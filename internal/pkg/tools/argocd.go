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
	"github.com/sugarkube/clusterctl/internal/pkg/cluster"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
)

// Argocd builds steps that run the argocd CLI
type Argocd struct {
	// directory manifests are relative to
	Dir     string
	Session cluster.Session
}

func (a Argocd) command(prompt string, expect step.Expectation,
	args ...string) (step.Step, error) {
	argv := append([]string{ArgocdBinary}, args...)
	opts := []step.Option{step.WithEnvMap(a.Session.Env())}
	if a.Dir != "" {
		opts = append(opts, step.WithDir(a.Dir))
	}
	return newStep(prompt, expect, argv, opts...)
}

func (a Argocd) Login(prompt string, expect step.Expectation, server string,
	username string, password string) (step.Step, error) {
	return a.command(prompt, expect, "login", server, "--username", username,
		"--password", password)
}

func (a Argocd) RepoAdd(prompt string, expect step.Expectation, repo string,
	sshKeyPath string) (step.Step, error) {
	return a.command(prompt, expect, "repo", "add", repo,
		"--ssh-private-key-path", sshKeyPath)
}

func (a Argocd) ProjCreate(prompt string, expect step.Expectation, project string,
	destination string, source string) (step.Step, error) {
	return a.command(prompt, expect, "proj", "create", project, "-d", destination,
		"-s", source)
}

func (a Argocd) ProjAllowClusterResource(prompt string, expect step.Expectation,
	project string, group string, kind string) (step.Step, error) {
	return a.command(prompt, expect, "proj", "allow-cluster-resource", project,
		group, kind)
}

func (a Argocd) AppCreate(prompt string, expect step.Expectation,
	manifest string) (step.Step, error) {
	return a.command(prompt, expect, "app", "create", "-f", manifest)
}
