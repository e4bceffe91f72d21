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
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

type kind int

const (
	kindAny kind = iota
	kindSuccess
	kindFailure
	kindCode
	kindCodeIn
)

// Expectation declares which outcome of a step counts as fine. The zero value
// is `Any`.
type Expectation struct {
	kind    kind
	codes   []int
	pattern string
	re      *regexp.Regexp
	err     error
}

// The command must exit with code 0
func Success() Expectation {
	return Expectation{kind: kindSuccess}
}

// The command must exit with a non-zero code
func Failure() Expectation {
	return Expectation{kind: kindFailure}
}

// The command must exit with exactly the given code
func Code(code int) Expectation {
	return Expectation{kind: kindCode, codes: []int{code}}
}

// The command must exit with one of the given codes
func CodeIn(codes ...int) Expectation {
	e := Expectation{kind: kindCodeIn, codes: append([]int{}, codes...)}
	if len(codes) == 0 {
		e.err = errors.New("at least one exit code is required")
	}
	return e
}

// Any outcome is fine
func Any() Expectation {
	return Expectation{kind: kindAny}
}

// The command's stdout must match the pattern. The exit code isn't checked.
func Output(pattern string) Expectation {
	return withPattern(Any(), pattern)
}

// The command must exit with code 0 and its stdout must match the pattern
func SuccessWithOutput(pattern string) Expectation {
	return withPattern(Success(), pattern)
}

// The command must exit non-zero and its stdout must match the pattern
func FailureWithOutput(pattern string) Expectation {
	return withPattern(Failure(), pattern)
}

// The command must exit with the given code and its stdout must match the pattern
func CodeWithOutput(code int, pattern string) Expectation {
	return withPattern(Code(code), pattern)
}

func withPattern(e Expectation, pattern string) Expectation {
	e.pattern = pattern
	re, err := regexp.Compile(pattern)
	if err != nil {
		e.err = errors.Wrapf(err, "bad output pattern '%s'", pattern)
		return e
	}
	e.re = re
	return e
}

// Returns whether the expectation needs the step's stdout to be captured
func (e Expectation) InspectsOutput() bool {
	return e.pattern != ""
}

// Returns any error found while building the expectation
func (e Expectation) Err() error {
	return e.err
}

func (e Expectation) String() string {
	var s string
	switch e.kind {
	case kindSuccess:
		s = "success"
	case kindFailure:
		s = "failure"
	case kindCode:
		s = fmt.Sprintf("exit code %d", e.codes[0])
	case kindCodeIn:
		codes := make([]string, len(e.codes))
		for i, code := range e.codes {
			codes[i] = fmt.Sprintf("%d", code)
		}
		s = fmt.Sprintf("exit code in [%s]", strings.Join(codes, ","))
	default:
		s = "any"
	}

	if e.InspectsOutput() {
		s = fmt.Sprintf("%s with output matching '%s'", s, e.pattern)
	}

	return s
}

// Verify returns whether a result satisfies an expectation. A process that was
// terminated by a signal never matches a specific exit code.
func Verify(result Result, expect Expectation) bool {
	if !exitCodeMatches(result, expect) {
		return false
	}

	if expect.InspectsOutput() {
		if expect.re == nil {
			return false
		}
		return expect.re.Match(result.Output)
	}

	return true
}

func exitCodeMatches(result Result, expect Expectation) bool {
	switch expect.kind {
	case kindSuccess:
		return !result.Signaled && result.ExitCode == 0
	case kindFailure:
		return result.Signaled || result.ExitCode != 0
	case kindCode:
		return !result.Signaled && result.ExitCode == expect.codes[0]
	case kindCodeIn:
		if result.Signaled {
			return false
		}
		for _, code := range expect.codes {
			if result.ExitCode == code {
				return true
			}
		}
		return false
	default:
		return true
	}
}
