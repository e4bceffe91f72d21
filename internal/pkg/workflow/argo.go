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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/cluster"
	"github.com/sugarkube/clusterctl/internal/pkg/config"
	"github.com/sugarkube/clusterctl/internal/pkg/gate"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
	"github.com/sugarkube/clusterctl/internal/pkg/templater"
	"github.com/sugarkube/clusterctl/internal/pkg/tools"
)

const (
	argoNamespace     = "argocd"
	argoChart         = "charts/pp-argo-cd"
	argoTemplateFile  = "argo_template.yaml"
	heapsterFile      = "pp-heapster.yaml"
	argoAdminUser     = "admin"
	bootstrapProject  = "bootstrap"
	chartRepoName     = "paperless"
	dexSecretKey      = "dex.github.clientSecret"
	helmReposKey      = "helm.repositories"
	argoServerLabel   = "app.kubernetes.io/component=server"
	argoServerService = "argocd-server"
)

var ErrNoDexSecret = errors.New("you must enter a dex secret")

// ArgoInit installs Argo CD onto a cluster then uses it to deploy the
// platform and paperless services
func (w *Workflow) ArgoInit(clusterID string) error {
	err := w.Config.Require(config.KubernetesDeploymentsPath,
		config.KubernetesDeploymentsSSHKey, config.InfraProfile,
		config.AssetsCachePath, config.ScratchDir)
	if err != nil {
		return errors.WithStack(err)
	}

	clusterID, err = w.resolveCluster(clusterID)
	if err != nil {
		return errors.WithStack(err)
	}

	namespace, err := cluster.DefaultNamespace(clusterID)
	if err != nil {
		return errors.WithStack(err)
	}

	session, err := w.fetchKubeconfig(clusterID)
	if err != nil {
		return errors.WithStack(err)
	}

	deployments := w.Config.KubernetesDeploymentsPath
	kubectl := tools.Kubectl{Session: session}
	helm := tools.Helm{Dir: deployments, Session: session}
	argoTemplate := filepath.Join(w.Config.ScratchDir, argoTemplateFile)

	q := newSequence().
		then(kubectl.CreateNamespace(executePrompt, step.Success(), argoNamespace)).
		then(helm.DepUpdate(executePrompt, step.Success(), argoChart)).
		then(helm.Template(fmt.Sprintf("Template the %s chart? The output will be "+
			"written to %s", filepath.Base(argoChart), argoTemplate), step.Success(),
			argoNamespace, fmt.Sprintf("%s/values-%s.yaml", argoChart, namespace),
			argoChart, argoTemplate)).
		say("Note: the warning \"destination for dexConfig is a table\" can be ignored").
		then(kubectl.Apply("Deploy argocd?", step.Success(), argoNamespace, argoTemplate))

	err = w.runSequence(q)
	if err != nil {
		return errors.WithStack(err)
	}

	err = gate.Pause(w.prompter(), "Wait for a couple of minutes while the ELB comes up")
	if err != nil {
		return errors.WithStack(err)
	}

	server, elb, err := w.discoverArgo(kubectl)
	if err != nil {
		return errors.WithStack(err)
	}

	argocd := tools.Argocd{Session: session}

	q = newSequence().
		then(argocd.Login("Log in to argo?", step.Success(), elb, argoAdminUser, server)).
		then(argocd.RepoAdd("Add git repo and private key?", step.Success(),
			w.Config.KubernetesDeploymentsRepo, w.Config.KubernetesDeploymentsSSHKey))

	err = w.runSequence(q)
	if err != nil {
		return errors.WithStack(err)
	}

	err = w.patchDexSecret(kubectl)
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = w.run(argocd.ProjCreate("Create argocd bootstrap project?", step.Success(),
		bootstrapProject, "*,*", "*"))
	if err != nil {
		return errors.WithStack(err)
	}

	err = gate.Pause(w.prompter(), "Wait a few seconds and let the bootstrap project initialize")
	if err != nil {
		return errors.WithStack(err)
	}

	deploymentsArgocd := tools.Argocd{Dir: deployments, Session: session}

	q = newSequence().
		then(argocd.ProjAllowClusterResource("Let bootstrap project manage any k8s resource?",
			step.Success(), bootstrapProject, "*", "*")).
		then(deploymentsArgocd.AppCreate("Create bootstrap Application CRD for cluster "+
			"services (this will launch a bunch of pods)?", step.Success(),
			fmt.Sprintf("bootstrap/%s/cluster.yaml", namespace)))

	err = w.runSequence(q)
	if err != nil {
		return errors.WithStack(err)
	}

	err = gate.Pause(w.prompter(), "Wait for a minute for chartmuseum to come online")
	if err != nil {
		return errors.WithStack(err)
	}

	repos, err := templater.HelmRepositories(chartRepoName,
		fmt.Sprintf("http://chartmuseum.%s", namespace))
	if err != nil {
		return errors.WithStack(err)
	}

	reposPatch, err := templater.DataPatch("data", helmReposKey, repos)
	if err != nil {
		return errors.WithStack(err)
	}

	heapsterPath, err := w.writeHeapsterApplication(namespace, clusterID)
	if err != nil {
		return errors.WithStack(err)
	}

	q = newSequence().
		then(kubectl.Patch("Patch argocd-cm configmap with our cluster's chartmuseum url?",
			step.Success(), "configmap", "argocd-cm", argoNamespace, reposPatch)).
		say("\nAn Application CRD has been written to %s", heapsterPath).
		then(argocd.AppCreate("Deploy heapster?", step.Success(), heapsterPath)).
		say("\nWe are ready to deploy paperless services").
		then(deploymentsArgocd.AppCreate("Deploy pp services (this will launch all our apps)?",
			step.Success(), fmt.Sprintf("bootstrap/%s/paperless-services.yaml", namespace)))

	err = w.runSequence(q)
	if err != nil {
		return errors.WithStack(err)
	}

	return w.say("\n[green]All services deployed.")
}

// Finds the argocd-server pod, whose name is the initial admin password, and
// the hostname of the ELB in front of it
func (w *Workflow) discoverArgo(kubectl tools.Kubectl) (string, string, error) {
	server, err := w.Query(tools.KubectlBinary, kubectl.GetColumnArgs(argoNamespace,
		"pod", ".metadata.name", "-l", argoServerLabel), kubectl.Session.Env())
	if err != nil {
		return "", "", errors.WithStack(err)
	}

	if server == "" {
		return "", "", errors.New("Couldn't discover the argocd-server pod")
	}

	// only the first pod is needed if the server has been scaled up
	server = strings.Fields(server)[0]

	err = w.say("\nDiscovered argocd-server pod: %s", server)
	if err != nil {
		return "", "", errors.WithStack(err)
	}

	elb, err := w.Query(tools.KubectlBinary, kubectl.GetColumnArgs(argoNamespace,
		"svc", ".status.loadBalancer.ingress[0].hostname", argoServerService),
		kubectl.Session.Env())
	if err != nil {
		return "", "", errors.WithStack(err)
	}

	if elb == "" || elb == "<none>" {
		return "", "", errors.New("Couldn't discover the argocd-server ELB. " +
			"It may not be ready yet.")
	}

	err = w.say("Discovered argocd-server ELB: %s", elb)
	if err != nil {
		return "", "", errors.WithStack(err)
	}

	err = w.say("\nSkipping creation of DNS records for the argocd subdomain")
	if err != nil {
		return "", "", errors.WithStack(err)
	}

	return server, elb, nil
}

// Optionally patches argocd-secret with the dex client secret the operator
// copies from the password manager
func (w *Workflow) patchDexSecret(kubectl tools.Kubectl) error {
	err := w.say("\nThe argocd-secret must be patched with a value from 1Password")
	if err != nil {
		return errors.WithStack(err)
	}

	enter, err := gate.YesNo(w.prompter(), "Enter the secret now?")
	if err != nil {
		return errors.WithStack(err)
	}

	if !enter {
		return nil
	}

	secret, err := w.prompter().Input("Dex client secret",
		"Enter the 1Password entry 'ArgoCD Beta Github App' (or equivalent) on exactly one line")
	if err != nil {
		return errors.WithStack(err)
	}

	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.WithStack(ErrNoDexSecret)
	}

	patch, err := templater.DataPatch("stringData", dexSecretKey, secret)
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = w.run(kubectl.Patch("Patch argocd-secret?", step.Success(), "secret",
		"argocd-secret", argoNamespace, patch))
	return errors.WithStack(err)
}

// Renders the heapster Application into the scratch dir and returns its path
func (w *Workflow) writeHeapsterApplication(namespace string, clusterID string) (string, error) {
	manifest, err := templater.HeapsterApplication(namespace, clusterID,
		w.Config.KubernetesDeploymentsRepo, w.Config.KubernetesDeploymentsRevision)
	if err != nil {
		return "", errors.WithStack(err)
	}

	path := filepath.Join(w.Config.ScratchDir, heapsterFile)

	err = templater.WriteManifest(path, manifest)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return path, nil
}
