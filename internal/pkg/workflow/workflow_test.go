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
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugarkube/clusterctl/internal/pkg/config"
	"github.com/sugarkube/clusterctl/internal/pkg/gate"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
	"github.com/sugarkube/clusterctl/internal/pkg/mock"
	"github.com/sugarkube/clusterctl/internal/pkg/printer"
	"github.com/sugarkube/clusterctl/internal/pkg/runner"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
)

const doneWaiting = "I'm done waiting"

func init() {
	log.ConfigureLogger("debug", false)
	printer.SetOutput(&bytes.Buffer{})
}

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()

	return &config.Config{
		TerraformingPath:              "/src/terraforming",
		KubernetesDeploymentsPath:     "/src/kubernetes-deployments",
		SecureManifestsPath:           filepath.Join(dir, "secure-manifests"),
		KubernetesDeploymentsRevision: "HEAD",
		KubernetesDeploymentsRepo:     "git@github.com:paperlesspost/kubernetes-deployments",
		KubernetesDeploymentsSSHKey:   "/keys/deploy",
		AssetsCachePath:               filepath.Join(dir, "assets"),
		InfraProfile:                  "infra",
		V1Profile:                     "v1",
		Region:                        "us-east-1",
		ScratchDir:                    dir,
		Clusters:                      config.DefaultClusters,
	}
}

// answers discovery queries from a map keyed on the full command line
type fakeQuery map[string]string

func (f fakeQuery) query(command string, args []string, envVars map[string]string) (string, error) {
	key := strings.Join(append([]string{command}, args...), " ")
	out, ok := f[key]
	if !ok {
		return "", errors.Errorf("unexpected query '%s'", key)
	}
	return out, nil
}

type harness struct {
	workflow *Workflow
	prompter *gate.Scripted
	spawner  *mock.Spawner
	opened   []string
}

func newHarness(conf *config.Config, queries fakeQuery, answers ...string) *harness {
	h := &harness{
		prompter: gate.NewScripted(answers...),
		spawner:  &mock.Spawner{},
	}

	h.workflow = New(runner.New(h.prompter, h.spawner), conf)
	h.workflow.Query = queries.query
	h.workflow.OpenURL = func(url string) error {
		h.opened = append(h.opened, url)
		return nil
	}

	return h
}

func (h *harness) expect(command string, results ...step.Result) *harness {
	h.spawner.Returns(command, results...)
	return h
}

const (
	tectonicDir = "/src/terraforming/projects/kubernetes-tectonic"
	getUpdate   = "terraform get -update"
	apply       = "terraform apply tfplan.out"
	showWs      = "terraform workspace show"
)

func selectWs(clusterID string) string {
	return "terraform workspace select " + clusterID
}

func plan(clusterID string) string {
	return "terraform plan -out tfplan.out -var-file " + clusterID + ".tfvars"
}

func planDestroy(clusterID string) string {
	return plan(clusterID) + " -destroy -detailed-exitcode"
}

func TestLaunchCluster(t *testing.T) {
	h := newHarness(testConfig(t), nil,
		"execute", "execute", "execute", "execute", "execute", "execute")
	h.expect(getUpdate, step.Exited(0)).
		expect(selectWs("development0"), step.Exited(0)).
		expect(plan("development0"), step.Exited(0), step.Exited(0)).
		// the first apply is expected to fail
		expect(apply, step.Exited(1), step.Exited(0))

	err := h.workflow.LaunchCluster("development0")
	require.Nil(t, err)

	assert.Equal(t, []string{
		getUpdate,
		selectWs("development0"),
		plan("development0"),
		apply,
		plan("development0"),
		apply,
	}, h.spawner.Commands())

	// no mismatch gate was shown
	for _, prompt := range h.prompter.Prompts {
		assert.NotEqual(t, gate.MismatchWarning, prompt)
	}
	assert.Equal(t, 0, h.prompter.Remaining())
	h.spawner.AssertExpectations(t)
}

func TestLaunchClusterPicksCluster(t *testing.T) {
	h := newHarness(testConfig(t), nil, "production1", "execute", "execute", "exit")
	h.expect(getUpdate, step.Exited(0)).
		expect(selectWs("production1"), step.Exited(0))

	err := h.workflow.LaunchCluster("")
	require.NotNil(t, err)
	assert.True(t, step.IsUserAbort(err))

	assert.Equal(t, "Select a cluster id", h.prompter.Prompts[0])
	assert.Equal(t, []string{getUpdate, selectWs("production1")}, h.spawner.Commands())
}

func TestLaunchClusterAbortStopsLaterSteps(t *testing.T) {
	h := newHarness(testConfig(t), nil, "execute", "execute", "execute", "exit")
	h.expect(getUpdate, step.Exited(0)).
		expect(selectWs("development2"), step.Exited(0)).
		expect(plan("development2"), step.Exited(0))

	err := h.workflow.LaunchCluster("development2")
	require.NotNil(t, err)
	assert.True(t, step.IsUserAbort(err))

	// neither apply ran
	assert.Equal(t, []string{getUpdate, selectWs("development2"), plan("development2")},
		h.spawner.Commands())
	h.spawner.AssertNotCalled(t, "Spawn", apply)
}

func TestLaunchClusterMismatch(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		expected []string
		aborted  bool
	}{
		{
			name:   "continue",
			answer: "continue",
			expected: []string{getUpdate, selectWs("development0"), plan("development0"),
				apply, plan("development0"), apply},
		},
		{
			name:     "exit",
			answer:   "exit",
			expected: []string{getUpdate, selectWs("development0"), plan("development0"), apply},
			aborted:  true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := newHarness(testConfig(t), nil, "execute", "execute", "execute",
				"execute", test.answer, "execute", "execute")
			// the first apply unexpectedly succeeds
			h.expect(getUpdate, step.Exited(0)).
				expect(selectWs("development0"), step.Exited(0)).
				expect(plan("development0"), step.Exited(0), step.Exited(0)).
				expect(apply, step.Exited(0), step.Exited(0))

			err := h.workflow.LaunchCluster("development0")
			if test.aborted {
				require.NotNil(t, err)
				assert.True(t, step.IsUserAbort(err))
			} else {
				require.Nil(t, err)
			}

			assert.Equal(t, test.expected, h.spawner.Commands())
			assert.Contains(t, h.prompter.Prompts, gate.MismatchWarning)
		})
	}
}

func TestLaunchClusterValidation(t *testing.T) {
	conf := testConfig(t)
	conf.InfraProfile = ""

	h := newHarness(conf, nil)
	err := h.workflow.LaunchCluster("development0")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), config.InfraProfile)
	assert.Empty(t, h.prompter.Prompts)

	h = newHarness(testConfig(t), nil)
	err = h.workflow.LaunchCluster("staging0")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "staging0")
	h.spawner.AssertNumberOfCalls(t, "Spawn", 0)

	conf = testConfig(t)
	conf.TerraformPlanArgs = `-var "unterminated`
	h = newHarness(conf, nil)
	err = h.workflow.LaunchCluster("development0")
	require.NotNil(t, err)
	h.spawner.AssertNumberOfCalls(t, "Spawn", 0)
}

func TestLaunchClusterPlanArgs(t *testing.T) {
	conf := testConfig(t)
	conf.TerraformPlanArgs = `-lock-timeout=60s -var "owner=ops team"`

	h := newHarness(conf, nil, "skip", "skip", "exit")

	err := h.workflow.LaunchCluster("development0")
	require.NotNil(t, err)
	assert.True(t, step.IsUserAbort(err))
	h.spawner.AssertNumberOfCalls(t, "Spawn", 0)

	tf, err := h.workflow.terraform(TectonicProject, conf.InfraProfile)
	require.Nil(t, err)
	assert.Equal(t, tectonicDir, tf.Dir)
	assert.Equal(t, []string{"-lock-timeout=60s", "-var", "owner=ops team"}, tf.PlanArgs)
}

func TestSequenceReportsBuildErrorsFirst(t *testing.T) {
	h := newHarness(testConfig(t), nil, "execute")

	q := newSequence().
		say("never printed").
		then(step.New("Execute command?", []string{"true"}, step.Success())).
		then(step.New("Execute command?", []string{}, step.Success())).
		then(step.New("Execute command?", []string{"false"}, step.Failure()))

	err := h.workflow.runSequence(q)
	require.NotNil(t, err)
	assert.True(t, step.IsInvalidStep(err))

	// nothing was asked or run
	assert.Empty(t, h.prompter.Prompts)
	h.spawner.AssertNumberOfCalls(t, "Spawn", 0)
}
