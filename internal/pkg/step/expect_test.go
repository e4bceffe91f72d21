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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyExitCodes(t *testing.T) {
	codes := []int{0, 1, 2, 3, 127, 255}

	for _, code := range codes {
		result := Exited(code)
		assert.Equal(t, code == 0, Verify(result, Success()), "success with code %d", code)
		assert.Equal(t, code != 0, Verify(result, Failure()), "failure with code %d", code)
		assert.Equal(t, code == 2, Verify(result, Code(2)), "code(2) with code %d", code)
		assert.True(t, Verify(result, Any()), "any with code %d", code)
	}
}

func TestVerifySignaled(t *testing.T) {
	result := Killed()

	assert.False(t, Verify(result, Success()))
	assert.True(t, Verify(result, Failure()))
	assert.False(t, Verify(result, Code(-1)))
	assert.False(t, Verify(result, CodeIn(0, -1, 2)))
	assert.True(t, Verify(result, Any()))
}

func TestVerifyCodeIn(t *testing.T) {
	tests := []struct {
		code     int
		expected bool
	}{
		{0, true},
		{1, false},
		{2, true},
		{3, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, Verify(Exited(test.code), CodeIn(0, 2)),
			"code %d", test.code)
	}
}

func TestVerifyOutput(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		expect   Expectation
		expected bool
	}{
		{
			name:     "output_only_match",
			result:   Result{ExitCode: 1, Output: []byte("kind: Deployment\n")},
			expect:   Output("kind: Deployment"),
			expected: true,
		},
		{
			name:     "output_only_no_match",
			result:   Result{ExitCode: 0, Output: []byte("kind: Service\n")},
			expect:   Output("kind: Deployment"),
			expected: false,
		},
		{
			name:     "success_with_output_both_hold",
			result:   Result{ExitCode: 0, Output: []byte("argocd-server-abc\n")},
			expect:   SuccessWithOutput("^argocd-server-"),
			expected: true,
		},
		{
			name:     "success_with_output_bad_code",
			result:   Result{ExitCode: 1, Output: []byte("argocd-server-abc\n")},
			expect:   SuccessWithOutput("^argocd-server-"),
			expected: false,
		},
		{
			name:     "failure_with_output",
			result:   Result{ExitCode: 1, Output: []byte("AlreadyExists")},
			expect:   FailureWithOutput("AlreadyExists"),
			expected: true,
		},
		{
			name:     "failure_with_output_wrong_text",
			result:   Result{ExitCode: 1, Output: []byte("Forbidden")},
			expect:   FailureWithOutput("AlreadyExists"),
			expected: false,
		},
		{
			name:     "code_with_output",
			result:   Result{ExitCode: 2, Output: []byte("Plan: 3 to add")},
			expect:   CodeWithOutput(2, `Plan: \d+ to add`),
			expected: true,
		},
		{
			name:     "code_with_output_signaled",
			result:   Result{ExitCode: -1, Signaled: true, Output: []byte("Plan: 3 to add")},
			expect:   CodeWithOutput(-1, `Plan`),
			expected: false,
		},
		{
			name:     "empty_output",
			result:   Result{ExitCode: 0},
			expect:   SuccessWithOutput("."),
			expected: false,
		},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, Verify(test.result, test.expect),
			"unexpected result for %s", test.name)
	}
}

func TestExpectationString(t *testing.T) {
	assert.Equal(t, "success", Success().String())
	assert.Equal(t, "failure", Failure().String())
	assert.Equal(t, "any", Any().String())
	assert.Equal(t, "any", Expectation{}.String())
	assert.Equal(t, "exit code 3", Code(3).String())
	assert.Equal(t, "exit code in [0,2]", CodeIn(0, 2).String())
	assert.Equal(t, "success with output matching 'ok'", SuccessWithOutput("ok").String())
}
