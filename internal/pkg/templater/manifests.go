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

package templater

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
	"gopkg.in/yaml.v2"
)

const heapsterApplicationTemplate = `---
apiVersion: argoproj.io/v1alpha1
kind: Application
metadata:
  name: pp-heapster-{{ .namespace }}
spec:
  destination:
    namespace: {{ .namespace }}
    server: https://kubernetes.default.svc
  ignoreDifferences:
    - group: extensions
      kind: Deployment
      jsonPointers:
      - /spec/template/spec/containers/0/resources
  project: default
  source:
    helm:
      valueFiles:
      - values.yaml
      - values-{{ .clusterID }}.yaml
    path: charts/pp-heapster
    repoURL: {{ .repoURL | quote }}
    targetRevision: {{ .revision | default "HEAD" | quote }}
  syncPolicy:
    automated: {}
`

// Renders the Argo CD Application that deploys heapster into a namespace
func HeapsterApplication(namespace string, clusterID string, repoURL string,
	revision string) (string, error) {
	rendered, err := Render(heapsterApplicationTemplate, map[string]interface{}{
		"namespace": namespace,
		"clusterID": clusterID,
		"repoURL":   repoURL,
		"revision":  revision,
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	err = ValidateManifest(rendered)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return rendered, nil
}

// Returns an error unless the manifest is YAML with a kind and apiVersion
func ValidateManifest(manifest string) error {
	var parsed struct {
		APIVersion string                 `yaml:"apiVersion"`
		Kind       string                 `yaml:"kind"`
		Metadata   map[string]interface{} `yaml:"metadata"`
	}

	err := yaml.Unmarshal([]byte(manifest), &parsed)
	if err != nil {
		return errors.Wrap(err, "Rendered manifest isn't valid YAML")
	}

	if parsed.APIVersion == "" || parsed.Kind == "" {
		return errors.New("Rendered manifest is missing an apiVersion or kind")
	}

	return nil
}

// Writes a manifest to a file, replacing it if it exists
func WriteManifest(path string, manifest string) error {
	err := ioutil.WriteFile(path, []byte(manifest), 0644)
	if err != nil {
		return errors.Wrapf(err, "Error writing manifest to '%s'", path)
	}

	log.Logger.Debugf("Wrote manifest to '%s'", path)

	return nil
}

// Builds a merge patch that sets a single key under a field of an object,
// e.g. 'data' for a config map or 'stringData' for a secret
func DataPatch(field string, key string, value string) (string, error) {
	patch := map[string]map[string]string{
		field: {
			key: value,
		},
	}

	out, err := yaml.Marshal(patch)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(out), nil
}

// Builds the value of argocd-cm's 'helm.repositories' key pointing at the
// cluster's chartmuseum
func HelmRepositories(name string, url string) (string, error) {
	repos := []yaml.MapSlice{
		{
			{Key: "name", Value: name},
			{Key: "type", Value: "helm"},
			{Key: "url", Value: url},
		},
	}

	out, err := yaml.Marshal(repos)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(out), nil
}
