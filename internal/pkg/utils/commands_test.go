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
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeEnv(t *testing.T) {
	parent := []string{"AWS_PROFILE=default", "HOME=/home/ops", "EMPTY="}

	merged := MergeEnv(parent, map[string]string{
		"AWS_PROFILE": "infra",
		"KUBECONFIG":  "/cache/kubeconfig",
	})

	assert.Equal(t, []string{
		"HOME=/home/ops",
		"EMPTY=",
		"AWS_PROFILE=infra",
		"KUBECONFIG=/cache/kubeconfig",
	}, merged)

	// the parent is untouched
	assert.Equal(t, "AWS_PROFILE=default", parent[0])
}

func TestMergeEnvNoOverlay(t *testing.T) {
	parent := []string{"A=1", "B=2"}
	assert.Equal(t, parent, MergeEnv(parent, nil))
}

func TestExecCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	var stdout, stderr bytes.Buffer

	err := ExecCommand("sh", []string{"-c", `echo "$AWS_PROFILE"; echo oops >&2`},
		map[string]string{"AWS_PROFILE": "infra"}, &stdout, &stderr, "", 0)
	assert.Nil(t, err)
	assert.Equal(t, "infra\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())

	err = ExecCommand("sh", []string{"-c", "echo partial; exit 2"}, nil,
		&stdout, &stderr, "", 0)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "Stdout=partial")

	err = ExecCommand("sh", []string{"-c", "sleep 3"}, nil, &stdout, &stderr, "", 1)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "Timed out")
}

func TestQuery(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	out, err := Query("sh", []string{"-c", `printf '  %s\n\n' "$KUBECONFIG"`},
		map[string]string{"KUBECONFIG": "/cache/development0/kubeconfig"})
	assert.Nil(t, err)
	assert.Equal(t, "/cache/development0/kubeconfig", out)

	_, err = Query("sh", []string{"-c", "exit 1"}, nil)
	assert.NotNil(t, err)
}
