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
	"github.com/pkg/errors"
)

// Scripted answers prompts from a fixed list of choice labels instead of a
// terminal, and records every prompt it was shown
type Scripted struct {
	answers []string
	inputs  []string
	Prompts []string
}

// Creates a prompter that answers prompts with the given labels, in order
func NewScripted(answers ...string) *Scripted {
	return &Scripted{
		answers: answers,
	}
}

// Queues answers for Input prompts
func (s *Scripted) WithInputs(inputs ...string) *Scripted {
	s.inputs = append(s.inputs, inputs...)
	return s
}

func (s *Scripted) Choose(prompt string, choices []string) (int, error) {
	s.Prompts = append(s.Prompts, prompt)

	if len(s.answers) == 0 {
		return -1, errors.Errorf("no scripted answer left for prompt '%s'", prompt)
	}

	answer := s.answers[0]
	s.answers = s.answers[1:]

	for i, choice := range choices {
		if choice == answer {
			return i, nil
		}
	}

	return -1, errors.Errorf("scripted answer '%s' isn't one of %v for prompt '%s'",
		answer, choices, prompt)
}

func (s *Scripted) Input(title string, description string) (string, error) {
	s.Prompts = append(s.Prompts, title)

	if len(s.inputs) == 0 {
		return "", errors.Errorf("no scripted input left for '%s'", title)
	}

	input := s.inputs[0]
	s.inputs = s.inputs[1:]

	return input, nil
}

// Returns how many scripted answers haven't been used
func (s *Scripted) Remaining() int {
	return len(s.answers)
}
