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
	"os/exec"

	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
)

const (
	TerraformBinary = "terraform"
	KubectlBinary   = "kubectl"
	HelmBinary      = "helm"
	ArgocdBinary    = "argocd"
	AWSBinary       = "aws"
)

// Binaries the run-books shell out to
var Required = []string{
	TerraformBinary,
	KubectlBinary,
	HelmBinary,
	ArgocdBinary,
	AWSBinary,
}

// Looks up a binary on the PATH. Replaced in tests.
var LookPath = exec.LookPath

func newStep(prompt string, expect step.Expectation, argv []string,
	opts ...step.Option) (step.Step, error) {
	s, err := step.New(prompt, argv, expect, opts...)
	if err != nil {
		return step.Step{}, errors.WithStack(err)
	}
	return s, nil
}

// Returns a map of each required binary to its path, or an empty string if
// it isn't on the PATH
func FindRequired() map[string]string {
	found := make(map[string]string, len(Required))
	for _, binary := range Required {
		path, err := LookPath(binary)
		if err != nil {
			path = ""
		}
		found[binary] = path
	}
	return found
}
