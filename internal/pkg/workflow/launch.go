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
	"github.com/sugarkube/clusterctl/internal/pkg/step"
	"github.com/sugarkube/clusterctl/internal/pkg/tools"
)

// LaunchCluster steps through creating a cluster with the tectonic installer.
// The first apply is expected to fail so it's planned and applied twice.
func (w *Workflow) LaunchCluster(clusterID string) error {
	err := w.Config.Require(config.TerraformingPath, config.InfraProfile)
	if err != nil {
		return errors.WithStack(err)
	}

	err = w.say(intro, "launching")
	if err != nil {
		return errors.WithStack(err)
	}

	clusterID, err = w.resolveCluster(clusterID)
	if err != nil {
		return errors.WithStack(err)
	}

	tf, err := w.terraform(TectonicProject, w.Config.InfraProfile)
	if err != nil {
		return errors.WithStack(err)
	}

	varsFile := tools.VarsFile(clusterID)

	q := newSequence().
		say("\nUpdate terraform modules").
		then(tf.GetUpdate(executePrompt, step.Success())).
		say("\nSelect the correct workspace").
		then(tf.WorkspaceSelect(executePrompt, step.Success(), clusterID)).
		say("\nPlan changes to kubernetes-tectonic").
		then(tf.Plan(executePrompt, step.Success(), varsFile)).
		say("\nApply kubernetes-tectonic. [yellow]The first apply is expected to fail.").
		then(tf.Apply(executePrompt, step.Failure())).
		say("\nRe-plan changes to kubernetes-tectonic after the expected error").
		then(tf.Plan(executePrompt, step.Success(), varsFile)).
		say("\nRe-apply kubernetes-tectonic").
		then(tf.Apply(executePrompt, step.Success()))

	err = w.runSequence(q)
	if err != nil {
		return errors.WithStack(err)
	}

	return w.say("\n[green]Enjoy your new cluster :)")
}
