/*
 * Copyright 2018 The Sugarkube Authors
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

package utils

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
)

// Executes a non-interactive command with an optional timeout, writing stdout
// and stderr to buffers. Used for read-only queries whose output we need to
// parse, e.g. listing buckets. Anything that changes state is a step and goes
// through the runner instead.
func ExecCommand(command string, args []string, envVars map[string]string,
	stdoutBuf *bytes.Buffer, stderrBuf *bytes.Buffer, dir string,
	timeoutSeconds int) error {

	// reset the buffers in case they've already been used
	stdoutBuf.Reset()
	stderrBuf.Reset()

	var cmd *exec.Cmd

	ctx := context.Background()
	if timeoutSeconds > 0 {
		log.Logger.Debugf("%s command will be run with a timeout of %d seconds",
			command, timeoutSeconds)

		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
		defer cancel()
	}

	cmd = exec.CommandContext(ctx, command, args...)
	cmd.Env = MergeEnv(os.Environ(), envVars)
	cmd.Stdout = stdoutBuf
	cmd.Stderr = stderrBuf

	if dir != "" {
		cmd.Dir = dir
	}

	commandString := strings.TrimSpace(command + " " + strings.Join(args, " "))

	log.Logger.Debugf("Executing command in directory '%s' with env %v:\n%s",
		cmd.Dir, envVars, commandString)

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return errors.Wrapf(ctx.Err(), "Timed out executing command in "+
			"directory '%s':\n%s\nStdout=%s\nStderr=%s", cmd.Dir, commandString,
			stdoutBuf.String(), stderrBuf.String())
	}
	if err != nil {
		return errors.Wrapf(err, "Failed to run command in directory '%s':\n%s\n"+
			"Stdout=%s\nStderr=%s", cmd.Dir, commandString, stdoutBuf.String(),
			stderrBuf.String())
	}

	return nil
}

// MergeEnv returns the parent environment with the overlay applied. Keys in
// the overlay replace inherited values; the parent slice isn't modified.
func MergeEnv(parent []string, overlay map[string]string) []string {
	merged := make([]string, 0, len(parent)+len(overlay))

	for _, kv := range parent {
		key := kv
		if i := strings.Index(kv, "="); i >= 0 {
			key = kv[:i]
		}
		if _, ok := overlay[key]; ok {
			continue
		}
		merged = append(merged, kv)
	}

	keys := make([]string, 0, len(overlay))
	for k := range overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		merged = append(merged, k+"="+overlay[k])
	}

	return merged
}

// QueryFunc runs a read-only command and returns its trimmed stdout
type QueryFunc func(command string, args []string, envVars map[string]string) (string, error)

const queryTimeoutSeconds = 120

// Query is the QueryFunc that actually runs commands
func Query(command string, args []string, envVars map[string]string) (string, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	err := ExecCommand(command, args, envVars, &stdoutBuf, &stderrBuf, "",
		queryTimeoutSeconds)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return strings.TrimSpace(stdoutBuf.String()), nil
}
