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

package step

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Step describes a single external command together with the prompt shown to
// the operator and the outcome that counts as fine. Steps are immutable once
// built.
type Step struct {
	prompt    string
	argv      []string
	dir       string
	env       map[string]string
	captureTo string
	expect    Expectation
}

// Option customises a step while it's being built
type Option func(*Step)

// Run the command in the given directory instead of the current one
func WithDir(dir string) Option {
	return func(s *Step) {
		s.dir = dir
	}
}

// Set an env var for the spawned process only
func WithEnv(key string, value string) Option {
	return func(s *Step) {
		s.env[key] = value
	}
}

// Set several env vars for the spawned process only
func WithEnvMap(envVars map[string]string) Option {
	return func(s *Step) {
		for k, v := range envVars {
			s.env[k] = v
		}
	}
}

// Write the command's stdout to the given path once it exits, replacing any
// existing file
func CapturesTo(path string) Option {
	return func(s *Step) {
		s.captureTo = path
	}
}

// New builds a step, returning ErrInvalidStep if argv is empty or the
// expectation can't be checked against the step.
func New(prompt string, argv []string, expect Expectation, opts ...Option) (Step, error) {
	s := Step{
		prompt: prompt,
		argv:   append([]string{}, argv...),
		env:    map[string]string{},
		expect: expect,
	}

	for _, opt := range opts {
		opt(&s)
	}

	if len(s.argv) == 0 || s.argv[0] == "" {
		return Step{}, errors.Wrap(ErrInvalidStep, "a command is required")
	}

	if err := expect.Err(); err != nil {
		return Step{}, errors.Wrapf(ErrInvalidStep, "command '%s': %v",
			s.CommandString(), err)
	}

	if expect.InspectsOutput() && s.captureTo == "" {
		return Step{}, errors.Wrapf(ErrInvalidStep, "command '%s' expects %s "+
			"but doesn't capture its output", s.CommandString(), expect)
	}

	return s, nil
}

// Like New but panics on error. Only for steps built from literals.
func MustNew(prompt string, argv []string, expect Expectation, opts ...Option) Step {
	s, err := New(prompt, argv, expect, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Step) Prompt() string {
	return s.prompt
}

// Returns a copy of the command and its arguments
func (s Step) Argv() []string {
	return append([]string{}, s.argv...)
}

func (s Step) Dir() string {
	return s.dir
}

// Returns the absolute working directory the command will run in, falling
// back to the current directory
func (s Step) ResolvedDir() (string, error) {
	if s.dir != "" {
		dir, err := filepath.Abs(s.dir)
		if err != nil {
			return "", errors.Wrapf(err, "Error resolving directory '%s'", s.dir)
		}
		return dir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WithStack(err)
	}

	return cwd, nil
}

// Returns a copy of the env var overlay
func (s Step) Env() map[string]string {
	env := make(map[string]string, len(s.env))
	for k, v := range s.env {
		env[k] = v
	}
	return env
}

// Returns the overlay as sorted KEY=VALUE pairs
func (s Step) EnvList() []string {
	envVars := make([]string, 0, len(s.env))
	for k, v := range s.env {
		envVars = append(envVars, k+"="+v)
	}
	sort.Strings(envVars)
	return envVars
}

func (s Step) CaptureTo() string {
	return s.captureTo
}

func (s Step) Captures() bool {
	return s.captureTo != ""
}

func (s Step) Expect() Expectation {
	return s.expect
}

func (s Step) CommandString() string {
	return strings.Join(s.argv, " ")
}
