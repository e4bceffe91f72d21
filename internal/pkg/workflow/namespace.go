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
	"github.com/sugarkube/clusterctl/internal/pkg/cluster"
	"github.com/sugarkube/clusterctl/internal/pkg/config"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
	"github.com/sugarkube/clusterctl/internal/pkg/printer"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
	"github.com/sugarkube/clusterctl/internal/pkg/tools"
	"github.com/sugarkube/clusterctl/internal/pkg/utils"
)

const (
	kubeSystemNamespace  = "kube-system"
	clusterInfoConfigMap = "cluster-info"
	clusterNameKey       = "cluster-name"
	manifestPattern      = `\.(ya?ml|json)$`
)

// NamespaceInit creates a cluster's default namespace and loads the secrets
// and config maps it needs from the secure manifests repo
func (w *Workflow) NamespaceInit(clusterID string) error {
	err := w.Config.Require(config.SecureManifestsPath, config.InfraProfile,
		config.AssetsCachePath)
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

	secureManifests := w.Config.SecureManifestsPath
	sharedSecrets := filepath.Join(secureManifests, "secrets", "shared")
	namespaceSecrets := filepath.Join(secureManifests, "secrets", namespace)
	namespaceConfigMaps := filepath.Join(secureManifests, "configMaps", namespace)

	for _, dir := range []string{sharedSecrets, namespaceSecrets, namespaceConfigMaps} {
		err = warnIfNoManifests(dir)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	kubectl := tools.Kubectl{Session: session}

	q := newSequence().
		then(kubectl.CreateNamespace(executePrompt, step.Success(), namespace)).
		then(kubectl.CreateFromDir("Deploy shared secrets?", step.Success(),
			kubeSystemNamespace, sharedSecrets)).
		then(kubectl.CreateFromDir("Deploy default namespace secrets? NOTE: An error is expected",
			step.Failure(), namespace, namespaceSecrets)).
		then(kubectl.CreateFromDir("Deploy default namespace config maps?", step.Success(),
			namespace, namespaceConfigMaps)).
		then(kubectl.CreateConfigMapLiteral(
			"Create cluster-info config map in kube-system namespace?", step.Success(),
			kubeSystemNamespace, clusterInfoConfigMap, clusterNameKey, clusterID)).
		then(kubectl.CreateConfigMapLiteral(
			"Create cluster-info config map in default namespace?", step.Success(),
			namespace, clusterInfoConfigMap, clusterNameKey, clusterID))

	err = w.runSequence(q)
	if err != nil {
		return errors.WithStack(err)
	}

	return w.say("\n[green]Namespace '%s' initialised on %s", namespace, clusterID)
}

// Prints a warning if a directory kubectl will create resources from doesn't
// contain any manifests, which usually means the secure manifests repo isn't
// checked out where the config says it is
func warnIfNoManifests(dir string) error {
	manifests, err := utils.FindFilesByPattern(dir, manifestPattern, true)
	if err != nil {
		log.Logger.Debugf("Error searching '%s' for manifests: %v", dir, err)
		manifests = nil
	}

	if len(manifests) > 0 {
		log.Logger.Debugf("Found %d manifests in '%s'", len(manifests), dir)
		return nil
	}

	_, err = printer.Fprintf("[yellow]Warning: no manifests found in '%s'\n", dir)
	return errors.WithStack(err)
}
