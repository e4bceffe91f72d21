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

package cli

import (
	"github.com/spf13/cobra"
	"github.com/sugarkube/clusterctl/internal/pkg/workflow"
)

func newNamespaceInitCmd(opts *rootOptions) *cobra.Command {
	return newWorkflowCmd(opts, "namespace-init",
		"Create namespaces with secrets and config maps",
		`Downloads a cluster's kubeconfig then creates its default namespace and
loads secrets and config maps from the secure manifests repo.`,
		func(w *workflow.Workflow, clusterID string) error {
			return w.NamespaceInit(clusterID)
		})
}
