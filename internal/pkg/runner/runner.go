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

package runner

import (
	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/gate"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
	"github.com/sugarkube/clusterctl/internal/pkg/printer"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
)

type Status int

const (
	Skipped Status = iota
	Executed
	Aborted
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Executed:
		return "executed"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Outcome is what happened to a single step. Result is only meaningful when
// the step was executed.
type Outcome struct {
	Status  Status
	Matched bool
	Result  step.Result
}

// Runner asks the operator before running each step and again if the step
// doesn't behave as expected
type Runner struct {
	prompter gate.Prompter
	spawner  Spawner
}

func New(prompter gate.Prompter, spawner Spawner) *Runner {
	return &Runner{
		prompter: prompter,
		spawner:  spawner,
	}
}

func (r *Runner) Prompter() gate.Prompter {
	return r.prompter
}

// Run confirms, executes and verifies a single step.
//
// A skipped step counts as matched. Choosing 'exit' at either gate returns
// ErrUserAbort, which callers must propagate so no later step runs. A process
// that can't be started returns ErrSpawnFailed without showing the mismatch
// gate and an Aborted outcome. Choosing 'continue' after a mismatch returns a
// nil error.
func (r *Runner) Run(s step.Step) (Outcome, error) {
	decision, err := gate.Confirm(r.prompter, s)
	if err != nil {
		return Outcome{Status: Aborted}, errors.WithStack(err)
	}

	switch decision {
	case gate.Abort:
		log.Logger.Infof("Aborted before running '%s'", s.CommandString())
		return Outcome{Status: Aborted}, errors.WithStack(step.ErrUserAbort)
	case gate.Skip:
		log.Logger.Infof("Skipped '%s'", s.CommandString())
		_, err = printer.Fprintln("[yellow]Skipped")
		if err != nil {
			return Outcome{Status: Skipped, Matched: true}, errors.WithStack(err)
		}
		return Outcome{Status: Skipped, Matched: true}, nil
	}

	result, err := r.spawner.Spawn(s)
	if err != nil {
		return Outcome{Status: Aborted}, errors.WithStack(err)
	}

	outcome := Outcome{
		Status:  Executed,
		Matched: step.Verify(result, s.Expect()),
		Result:  result,
	}

	if outcome.Matched {
		return outcome, nil
	}

	log.Logger.Warnf("%s: '%s' finished with %s but expected %s",
		step.ErrOutcomeMismatch, s.CommandString(), result, s.Expect())

	_, err = printer.Fprintf("\n[yellow]Expected %s but the command finished with %s\n",
		s.Expect(), result)
	if err != nil {
		return outcome, errors.WithStack(err)
	}

	decision, err = gate.Mismatch(r.prompter)
	if err != nil {
		outcome.Status = Aborted
		return outcome, errors.WithStack(err)
	}

	if decision == gate.Abort {
		outcome.Status = Aborted
		return outcome, errors.Wrapf(step.ErrUserAbort, "'%s' behaved unexpectedly",
			s.CommandString())
	}

	log.Logger.Infof("Continuing despite unexpected result from '%s'", s.CommandString())

	return outcome, nil
}
