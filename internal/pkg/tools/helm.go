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

// Helm builds steps that run helm in a charts repo
type Helm struct {
	Dir     string
	Session cluster.Session
}

func (h Helm) command(prompt string, expect step.Expectation, args []string,
	opts ...step.Option) (step.Step, error) {
	argv := append([]string{HelmBinary}, args...)
	opts = append([]step.Option{step.WithDir(h.Dir),
		step.WithEnvMap(h.Session.Env())}, opts...)
	return newStep(prompt, expect, argv, opts...)
}

func (h Helm) DepUpdate(prompt string, expect step.Expectation,
	chart string) (step.Step, error) {
	return h.command(prompt, expect, []string{"dep", "update", chart})
}

// Renders a chart, writing the manifests to outPath
func (h Helm) Template(prompt string, expect step.Expectation, namespace string,
	valuesFile string, chart string, outPath string) (step.Step, error) {
	return h.command(prompt, expect,
		[]string{"template", "-n", namespace, "-f", valuesFile, chart},
		step.CapturesTo(outPath))
}
