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
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
	"github.com/sugarkube/clusterctl/internal/pkg/utils"
)

// Spawner starts the process a step describes and blocks until it exits
type Spawner interface {
	Spawn(s step.Step) (step.Result, error)
}

// OSSpawner runs steps as child processes attached to the operator's
// terminal
type OSSpawner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func NewOSSpawner() *OSSpawner {
	return &OSSpawner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Spawn runs the step to completion. Stdout is buffered instead of shown when
// the step captures it, and the buffer is written to the capture target
// whatever the exit code. There's no timeout.
func (o *OSSpawner) Spawn(s step.Step) (step.Result, error) {
	argv := s.Argv()
	if len(argv) == 0 {
		return step.Result{}, errors.WithStack(step.ErrInvalidStep)
	}

	dir, err := s.ResolvedDir()
	if err != nil {
		return step.Result{}, errors.WithStack(&step.SpawnError{
			Command: s.CommandString(), Err: err})
	}

	path, err := lookPath(argv[0], dir, s.Env())
	if err != nil {
		return step.Result{}, errors.WithStack(&step.SpawnError{
			Command: s.CommandString(), Err: err})
	}

	cmd := exec.Command(path, argv[1:]...)
	cmd.Env = utils.MergeEnv(os.Environ(), s.Env())
	cmd.Dir = dir
	cmd.Stdin = o.Stdin
	cmd.Stderr = o.Stderr

	stdoutBuf := &bytes.Buffer{}
	if s.Captures() {
		cmd.Stdout = stdoutBuf
	} else {
		cmd.Stdout = o.Stdout
	}

	log.Logger.Debugf("Executing command in directory '%s' with env %v:\n%s",
		cmd.Dir, s.EnvList(), s.CommandString())

	err = cmd.Start()
	if err != nil {
		return step.Result{}, errors.WithStack(&step.SpawnError{
			Command: s.CommandString(), Err: err})
	}

	waitErr := cmd.Wait()
	if cmd.ProcessState == nil {
		return step.Result{}, errors.Wrapf(waitErr, "Error waiting for '%s'",
			s.CommandString())
	}

	if _, ok := waitErr.(*exec.ExitError); waitErr != nil && !ok {
		log.Logger.Warnf("Error collecting output of '%s': %v", s.CommandString(), waitErr)
	}

	result := resultFromState(cmd.ProcessState)

	if s.Captures() {
		result.Output = stdoutBuf.Bytes()

		err = ioutil.WriteFile(s.CaptureTo(), result.Output, 0644)
		if err != nil {
			return result, errors.Wrapf(err, "Error writing stdout of '%s' to '%s'",
				s.CommandString(), s.CaptureTo())
		}

		log.Logger.Debugf("Wrote %d bytes of stdout to '%s'", len(result.Output),
			s.CaptureTo())
	}

	log.Logger.Debugf("Command '%s' finished with %s", s.CommandString(), result)

	return result, nil
}

// Finds the executable the child would run. Relative paths are resolved
// against the step's directory and bare names are searched for on the
// overlay's PATH when it sets one.
func lookPath(name string, dir string, env map[string]string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		return exec.LookPath(name)
	}

	searchPath, ok := env["PATH"]
	if !ok {
		return exec.LookPath(name)
	}

	for _, entry := range filepath.SplitList(searchPath) {
		if entry == "" {
			entry = "."
		}
		candidate := filepath.Join(entry, name)
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(dir, candidate)
		}
		path, err := exec.LookPath(candidate)
		if err == nil {
			return path, nil
		}
	}

	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func resultFromState(state *os.ProcessState) step.Result {
	code := state.ExitCode()
	if code == -1 {
		return step.Killed()
	}
	return step.Exited(code)
}
