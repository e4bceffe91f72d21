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
	"github.com/pkg/errors"
)

var (
	// Returned when a step or its expectation is malformed. This is a
	// programming error so it's never shown to the operator as a gate.
	ErrInvalidStep = errors.New("invalid step")

	// Returned when the OS couldn't start the process
	ErrSpawnFailed = errors.New("failed to spawn command")

	// The process ran but its result didn't satisfy its expectation
	ErrOutcomeMismatch = errors.New("command behaved unexpectedly")

	// The operator chose to exit at a gate
	ErrUserAbort = errors.New("aborted by user")
)

// Returns true if the cause of the error is an operator abort
func IsUserAbort(err error) bool {
	return err != nil && errors.Cause(err) == ErrUserAbort
}

// Returns true if the cause of the error is a malformed step
func IsInvalidStep(err error) bool {
	return err != nil && errors.Cause(err) == ErrInvalidStep
}

// Returns true if the cause of the error is a failure to start a process
func IsSpawnFailed(err error) bool {
	if err == nil {
		return false
	}
	_, ok := errors.Cause(err).(*SpawnError)
	return ok || errors.Cause(err) == ErrSpawnFailed
}

// SpawnError records which command couldn't be started and why
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return ErrSpawnFailed.Error() + " '" + e.Command + "': " + e.Err.Error()
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
