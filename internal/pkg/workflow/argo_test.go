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
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugarkube/clusterctl/internal/pkg/config"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
	"github.com/sugarkube/clusterctl/internal/pkg/templater"
)

const (
	argoPodQuery = "kubectl get pod -n argocd -l app.kubernetes.io/component=server " +
		"-o custom-columns=VALUE:.metadata.name --no-headers"
	argoELBQuery = "kubectl get svc -n argocd argocd-server " +
		"-o custom-columns=VALUE:.status.loadBalancer.ingress[0].hostname --no-headers"
	argoELB = "a1b2c3.us-east-1.elb.amazonaws.com"
	argoPod = "argocd-server-5d4f8c7b9-x2x7q"
)

func argoQueries() fakeQuery {
	return fakeQuery{
		listBuckets:  "adevelopment1-abcd",
		argoPodQuery: argoPod + "\n",
		argoELBQuery: argoELB,
	}
}

// expects every step before the dex secret prompt
func expectArgoInstall(h *harness, conf *config.Config) {
	h.expect(getKubeconfig("adevelopment1-abcd", conf.AssetsCachePath, "development1"),
		step.Exited(0)).
		expect("kubectl create ns argocd", step.Exited(0)).
		expect("helm dep update charts/pp-argo-cd", step.Exited(0)).
		expect("helm template -n argocd -f charts/pp-argo-cd/values-development.yaml "+
			"charts/pp-argo-cd", step.Exited(0)).
		expect("kubectl apply -n argocd -f "+
			filepath.Join(conf.ScratchDir, "argo_template.yaml"), step.Exited(0)).
		expect("argocd login "+argoELB+" --username admin --password "+argoPod,
			step.Exited(0)).
		expect("argocd repo add git@github.com:paperlesspost/kubernetes-deployments "+
			"--ssh-private-key-path /keys/deploy", step.Exited(0))
}

var argoInstallAnswers = []string{
	"execute", // download kubeconfig
	"execute", // create ns
	"execute", // helm dep update
	"execute", // helm template
	"execute", // kubectl apply
	doneWaiting,
	"execute", // login
	"execute", // repo add
}

func TestArgoInit(t *testing.T) {
	conf := testConfig(t)

	answers := append(append([]string{}, argoInstallAnswers...),
		"yes",     // enter the dex secret
		"execute", // patch argocd-secret
		"execute", // proj create
		doneWaiting,
		"execute", // allow-cluster-resource
		"execute", // cluster app
		doneWaiting,
		"execute", // patch argocd-cm
		"execute", // heapster app
		"execute", // paperless services app
	)

	h := newHarness(conf, argoQueries(), answers...)
	h.prompter.WithInputs("  s3cr3t\n")

	secretPatch, err := templater.DataPatch("stringData", "dex.github.clientSecret", "s3cr3t")
	require.Nil(t, err)
	repos, err := templater.HelmRepositories("paperless", "http://chartmuseum.development")
	require.Nil(t, err)
	reposPatch, err := templater.DataPatch("data", "helm.repositories", repos)
	require.Nil(t, err)
	heapsterPath := filepath.Join(conf.ScratchDir, "pp-heapster.yaml")

	expectArgoInstall(h, conf)
	h.expect("kubectl patch secret argocd-secret -n argocd --patch "+secretPatch,
		step.Exited(0)).
		expect("argocd proj create bootstrap -d *,* -s *", step.Exited(0)).
		expect("argocd proj allow-cluster-resource bootstrap * *", step.Exited(0)).
		expect("argocd app create -f bootstrap/development/cluster.yaml", step.Exited(0)).
		expect("kubectl patch configmap argocd-cm -n argocd --patch "+reposPatch,
			step.Exited(0)).
		expect("argocd app create -f "+heapsterPath, step.Exited(0)).
		expect("argocd app create -f bootstrap/development/paperless-services.yaml",
			step.Exited(0))

	err = h.workflow.ArgoInit("development1")
	require.Nil(t, err)

	h.spawner.AssertExpectations(t)
	assert.Equal(t, 0, h.prompter.Remaining())
	assert.Len(t, h.spawner.Commands(), 14)

	heapster, err := ioutil.ReadFile(heapsterPath)
	require.Nil(t, err)
	assert.Contains(t, string(heapster), "name: pp-heapster-development")
	assert.Contains(t, string(heapster), "- values-development1.yaml")
}

func TestArgoInitSkipsDexSecret(t *testing.T) {
	conf := testConfig(t)
	answers := append(append([]string{}, argoInstallAnswers...), "no", "exit")

	h := newHarness(conf, argoQueries(), answers...)
	expectArgoInstall(h, conf)

	err := h.workflow.ArgoInit("development1")
	require.NotNil(t, err)
	assert.True(t, step.IsUserAbort(err))

	assert.Equal(t, "Create argocd bootstrap project?",
		h.prompter.Prompts[len(h.prompter.Prompts)-1])
	h.spawner.AssertExpectations(t)
}

func TestArgoInitEmptyDexSecret(t *testing.T) {
	conf := testConfig(t)
	answers := append(append([]string{}, argoInstallAnswers...), "yes")

	h := newHarness(conf, argoQueries(), answers...)
	h.prompter.WithInputs(" \n ")
	expectArgoInstall(h, conf)

	err := h.workflow.ArgoInit("development1")
	require.NotNil(t, err)
	assert.Equal(t, ErrNoDexSecret, errors.Cause(err))
	assert.Len(t, h.spawner.Commands(), 7)
}

func TestArgoInitDiscoveryFailure(t *testing.T) {
	conf := testConfig(t)
	queries := argoQueries()
	queries[argoELBQuery] = "<none>"

	h := newHarness(conf, queries, argoInstallAnswers[:6]...)
	h.expect(getKubeconfig("adevelopment1-abcd", conf.AssetsCachePath, "development1"),
		step.Exited(0)).
		expect("kubectl create ns argocd", step.Exited(0)).
		expect("helm dep update charts/pp-argo-cd", step.Exited(0)).
		expect("helm template -n argocd -f charts/pp-argo-cd/values-development.yaml "+
			"charts/pp-argo-cd", step.Exited(0)).
		expect("kubectl apply -n argocd -f "+
			filepath.Join(conf.ScratchDir, "argo_template.yaml"), step.Exited(0))

	err := h.workflow.ArgoInit("development1")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "ELB")
	h.spawner.AssertExpectations(t)
	assert.Len(t, h.spawner.Commands(), 5)
}

func TestArgoInitRequiresConfig(t *testing.T) {
	conf := testConfig(t)
	conf.KubernetesDeploymentsSSHKey = ""
	conf.KubernetesDeploymentsPath = ""

	h := newHarness(conf, argoQueries())
	err := h.workflow.ArgoInit("development1")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(),
		"kubernetes-deployments-path, kubernetes-deployments-ssh-key")
}
