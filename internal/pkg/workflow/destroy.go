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
	"github.com/sugarkube/clusterctl/internal/pkg/cluster"
	"github.com/sugarkube/clusterctl/internal/pkg/config"
	"github.com/sugarkube/clusterctl/internal/pkg/gate"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
	"github.com/sugarkube/clusterctl/internal/pkg/tools"
)

// State that sometimes stops a destroy plan from succeeding
var problemState = []string{
	"module.tectonic-aws.module.bootkube.template_dir.bootkube",
	"module.tectonic-aws.module.tectonic.template_dir.tectonic",
	"module.tectonic-aws.module.bootkube.template_dir.bootkube_bootstrap",
}

// 'terraform plan -detailed-exitcode' exits 2 when there's a diff and 0 when
// there isn't. Only 1 is an error.
var planDestroyExpect = step.CodeIn(0, 2)

var ErrWrongWorkspace = errors.New("wrong terraform workspace")

// DestroyCluster steps through destroying a cluster's kubernetes-tectonic
// project then optionally moves on to its ingress
func (w *Workflow) DestroyCluster(clusterID string) error {
	err := w.Config.Require(config.TerraformingPath, config.InfraProfile)
	if err != nil {
		return errors.WithStack(err)
	}

	err = w.say(intro, "destroying")
	if err != nil {
		return errors.WithStack(err)
	}

	proceed, err := gate.YesNo(w.prompter(), "Do you want to proceed?")
	if err != nil {
		return errors.WithStack(err)
	}

	if !proceed {
		log.Logger.Info("Operator chose not to destroy a cluster")
		return nil
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
		say("\nWe will now prepare a -destroy plan against kubernetes-tectonic").
		say("First, we must select the right workspace").
		then(tf.WorkspaceSelect(executePrompt, step.Success(), clusterID)).
		say("\nNext, we can optionally remove state that sometimes causes problems").
		then(tf.StateRm("Execute command or skip?", step.Success(), problemState...)).
		say("\nNext, we actually plan").
		then(tf.PlanDestroy(executePrompt, planDestroyExpect, varsFile)).
		say("\nThe plan we just ran should show approximately 120 resources to delete.").
		say("The output of the plan doesn't contain the cluster id so we must double " +
			"check the workspace we're on").
		then(tf.WorkspaceShow(executePrompt, step.Success()))

	err = w.runSequence(q)
	if err != nil {
		return errors.WithStack(err)
	}

	rightWorkspace, err := gate.YesNo(w.prompter(), "Are we on the right workspace?")
	if err != nil {
		return errors.WithStack(err)
	}

	if !rightWorkspace {
		return errors.Wrapf(ErrWrongWorkspace, "expected workspace '%s'", clusterID)
	}

	q = newSequence().
		say("\n[red]We are ready to destroy the cluster. THERE IS NO GOING BACK").
		then(tf.Apply(executePrompt, step.Any())).
		say("\nterraform apply may have encountered an error, but this is expected.").
		say("We will now create another -destroy plan to ensure all resources are " +
			"cleaned up. This plan should show no diff.").
		then(tf.PlanDestroy(executePrompt, planDestroyExpect, varsFile))

	err = w.runSequence(q)
	if err != nil {
		return errors.WithStack(err)
	}

	err = w.say("\nCluster destroy complete. DNS and ELBs associated with %s may "+
		"still be up", clusterID)
	if err != nil {
		return errors.WithStack(err)
	}

	next, err := gate.YesNo(w.prompter(), "Do you want to move on to destroying DNS and ELBs?")
	if err != nil {
		return errors.WithStack(err)
	}

	if !next {
		return nil
	}

	return w.DestroyIngress(clusterID)
}

// DestroyIngress steps through destroying the DNS records that point at a
// cluster. The ELBs Kubernetes created have to be deleted by hand.
func (w *Workflow) DestroyIngress(clusterID string) error {
	err := w.Config.Require(config.TerraformingPath, config.V1Profile)
	if err != nil {
		return errors.WithStack(err)
	}

	clusterID, err = w.resolveCluster(clusterID)
	if err != nil {
		return errors.WithStack(err)
	}

	tf, err := w.terraform(IngressProject, w.Config.V1Profile)
	if err != nil {
		return errors.WithStack(err)
	}

	q := newSequence().
		say("\nWe will now step through destroying the kubernetes-ingress project").
		say("First, we must select the right workspace").
		then(tf.WorkspaceSelect(executePrompt, step.Success(), clusterID)).
		say("\nWe will now prepare a -destroy plan against kubernetes-ingress").
		then(tf.PlanDestroy(executePrompt, planDestroyExpect, tools.VarsFile(clusterID))).
		say("\n[red]We are ready to apply. This will DESTROY DNS routes that point to %s",
			clusterID).
		then(tf.Apply(executePrompt, step.Success()))

	err = w.runSequence(q)
	if err != nil {
		return errors.WithStack(err)
	}

	url := cluster.ELBConsoleURL(w.Config.Region, clusterID)

	err = w.say(`
We have removed the DNS records!

A manual step is required in the AWS web console. There will be 3 ELBs
created by Kubernetes that will be left running.

The following URL will show all ELBs related to cluster id %s

%s

[bold]INSPECT EACH ONE CAREFULLY BEFORE YOU DELETE IT.[reset] There should be 0 live
instances associated with the ELBs you delete.`, clusterID, url)
	if err != nil {
		return errors.WithStack(err)
	}

	openIt, err := gate.YesNo(w.prompter(),
		"Open this url in your browser? (remember to use the infra profile)")
	if err != nil {
		return errors.WithStack(err)
	}

	if !openIt {
		return nil
	}

	err = w.OpenURL(url)
	if err != nil {
		return errors.Wrapf(err, "Error opening '%s' in a browser", url)
	}

	return nil
}
