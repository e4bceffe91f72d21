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

package gate

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
	"github.com/sugarkube/clusterctl/internal/pkg/printer"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
)

// Prompter asks the operator to pick one of several labelled choices. It
// returns the index of the selected choice.
type Prompter interface {
	Choose(prompt string, choices []string) (int, error)
	// Asks for free text, e.g. a secret pasted from a password manager
	Input(title string, description string) (string, error)
}

// Decision is what the operator chose at a gate
type Decision int

const (
	Execute Decision = iota
	Skip
	Abort
	Continue
)

func (d Decision) String() string {
	switch d {
	case Execute:
		return "execute"
	case Skip:
		return "skip"
	case Abort:
		return "exit"
	case Continue:
		return "continue"
	}
	return fmt.Sprintf("Decision(%d)", int(d))
}

const (
	choiceExecute  = "execute"
	choiceExit     = "exit"
	choiceSkip     = "skip"
	choiceContinue = "continue"
	choiceYes      = "yes"
	choiceNo       = "no"
	choiceDone     = "I'm done waiting"
)

const MismatchWarning = "Previous command behaved unexpectedly. Proceed with caution."

var (
	confirmChoices  = []string{choiceExecute, choiceExit, choiceSkip}
	mismatchChoices = []string{choiceContinue, choiceExit}
	yesNoChoices    = []string{choiceYes, choiceNo}
)

// Confirm shows the operator what's about to run and where, then asks
// whether to execute it, skip it or exit.
func Confirm(p Prompter, s step.Step) (Decision, error) {
	dir, err := s.ResolvedDir()
	if err != nil {
		return Abort, errors.WithStack(err)
	}

	_, err = printer.Fprintf("\n[bold]PATH:[reset] %s\n[bold]COMMAND:[reset] %s\n",
		dir, quoteArgv(s.Argv()))
	if err != nil {
		return Abort, errors.WithStack(err)
	}

	if envVars := s.EnvList(); len(envVars) > 0 {
		_, err = printer.Fprintf("[bold]ENV:[reset] %s\n", strings.Join(envVars, " "))
		if err != nil {
			return Abort, errors.WithStack(err)
		}
	}

	if s.Captures() {
		_, err = printer.Fprintf("[bold]STDOUT WRITTEN TO:[reset] %s\n", s.CaptureTo())
		if err != nil {
			return Abort, errors.WithStack(err)
		}
	}

	idx, err := p.Choose(s.Prompt(), confirmChoices)
	if err != nil {
		return Abort, errors.WithStack(err)
	}

	var decision Decision
	switch idx {
	case 0:
		decision = Execute
	case 1:
		decision = Abort
	case 2:
		decision = Skip
	default:
		return Abort, errors.Errorf("invalid choice %d", idx)
	}

	log.Logger.Debugf("Operator chose to %s '%s'", decision, s.CommandString())

	return decision, nil
}

// Mismatch warns that the previous command didn't behave as expected and
// asks whether to continue or exit
func Mismatch(p Prompter) (Decision, error) {
	idx, err := p.Choose(MismatchWarning, mismatchChoices)
	if err != nil {
		return Abort, errors.WithStack(err)
	}

	switch idx {
	case 0:
		return Continue, nil
	case 1:
		return Abort, nil
	}

	return Abort, errors.Errorf("invalid choice %d", idx)
}

// YesNo asks a yes/no question, e.g. at the boundary between two workflows
func YesNo(p Prompter, prompt string) (bool, error) {
	idx, err := p.Choose(prompt, yesNoChoices)
	if err != nil {
		return false, errors.WithStack(err)
	}

	if idx < 0 || idx >= len(yesNoChoices) {
		return false, errors.Errorf("invalid choice %d", idx)
	}

	log.Logger.Debugf("Operator answered '%s' to '%s'", yesNoChoices[idx], prompt)

	return idx == 0, nil
}

// Pause blocks until the operator acknowledges they're done waiting
func Pause(p Prompter, message string) error {
	_, err := p.Choose(message, []string{choiceDone})
	return errors.WithStack(err)
}

// Quotes args containing whitespace or quotes so the printed command can be
// pasted into a shell
func quoteArgv(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'*{}$") {
			quoted[i] = "'" + strings.Replace(arg, "'", `'\''`, -1) + "'"
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " ")
}
