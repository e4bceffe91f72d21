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

// Kubectl builds steps that run kubectl against a cluster session
type Kubectl struct {
	Session cluster.Session
}

func (k Kubectl) command(prompt string, expect step.Expectation,
	args ...string) (step.Step, error) {
	argv := append([]string{KubectlBinary}, args...)
	return newStep(prompt, expect, argv, step.WithEnvMap(k.Session.Env()))
}

func (k Kubectl) CreateNamespace(prompt string, expect step.Expectation,
	namespace string) (step.Step, error) {
	return k.command(prompt, expect, "create", "ns", namespace)
}

// Creates every manifest under a directory, recursively
func (k Kubectl) CreateFromDir(prompt string, expect step.Expectation,
	namespace string, dir string) (step.Step, error) {
	return k.command(prompt, expect, "create", "-n", namespace, "-Rf", dir)
}

func (k Kubectl) CreateConfigMapLiteral(prompt string, expect step.Expectation,
	namespace string, name string, key string, value string) (step.Step, error) {
	return k.command(prompt, expect, "create", "configmap", name,
		fmt.Sprintf("--from-literal=%s=%s", key, value), "-n", namespace)
}

func (k Kubectl) Apply(prompt string, expect step.Expectation,
	namespace string, manifest string) (step.Step, error) {
	return k.command(prompt, expect, "apply", "-n", namespace, "-f", manifest)
}

// Patches an object with a strategic merge patch (JSON or YAML)
func (k Kubectl) Patch(prompt string, expect step.Expectation,
	kind string, name string, namespace string, patch string) (step.Step, error) {
	return k.command(prompt, expect, "patch", kind, name, "-n", namespace,
		"--patch", patch)
}

// Returns the args for a read-only 'kubectl get' that prints one column of
// the matching resources without headers. They're run as queries rather
// than steps.
func (k Kubectl) GetColumnArgs(namespace string, resource string, column string,
	selectors ...string) []string {
	args := []string{"get", resource, "-n", namespace}
	args = append(args, selectors...)
	return append(args, "-o", fmt.Sprintf("custom-columns=VALUE:%s", column),
		"--no-headers")
}
