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
	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/config"
	"github.com/sugarkube/clusterctl/internal/pkg/printer"
	"github.com/sugarkube/clusterctl/internal/pkg/tools"
)

// CacheAssets downloads a cluster's kubeconfig into the local assets cache
func (w *Workflow) CacheAssets(clusterID string) error {
	err := w.Config.Require(config.InfraProfile, config.AssetsCachePath)
	if err != nil {
		return errors.WithStack(err)
	}

	clusterID, err = w.resolveCluster(clusterID)
	if err != nil {
		return errors.WithStack(err)
	}

	session, err := w.fetchKubeconfig(clusterID)
	if err != nil {
		return errors.WithStack(err)
	}

	return w.say("\nThe kubeconfig for %s is cached at %s\n\n  export KUBECONFIG=%s",
		clusterID, session.Kubeconfig, session.Kubeconfig)
}

// ToolCheck reports which of the binaries the run-books need are on the PATH.
// It doesn't need any config.
func ToolCheck() error {
	found := tools.FindRequired()
	missing := 0

	for _, binary := range tools.Required {
		path := found[binary]
		var err error
		if path == "" {
			missing++
			_, err = printer.Fprintf("[red]%-10s[reset] not found\n", binary)
		} else {
			_, err = printer.Fprintf("[green]%-10s[reset] %s\n", binary, path)
		}
		if err != nil {
			return errors.WithStack(err)
		}
	}

	if missing > 0 {
		return errors.Errorf("%d required tool(s) not found on the PATH", missing)
	}

	return nil
}
