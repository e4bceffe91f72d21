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

import "fmt"

// Result is what a spawned process left behind. It's created once by the
// spawner and never modified.
type Result struct {
	ExitCode int
	// true if the process was terminated by a signal, in which case ExitCode
	// is meaningless
	Signaled bool
	// stdout, only populated when the step captures output
	Output []byte
}

// Builds a result for a process that exited normally
func Exited(code int) Result {
	return Result{ExitCode: code}
}

// Builds a result for a process that was killed by a signal
func Killed() Result {
	return Result{ExitCode: -1, Signaled: true}
}

func (r Result) String() string {
	if r.Signaled {
		return "terminated by signal"
	}
	return fmt.Sprintf("exit code %d", r.ExitCode)
}
