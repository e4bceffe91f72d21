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

package workflow

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugarkube/clusterctl/internal/pkg/printer"
	"github.com/sugarkube/clusterctl/internal/pkg/tools"
)

func stubLookPath(t *testing.T, missing ...string) {
	original := tools.LookPath
	t.Cleanup(func() { tools.LookPath = original })

	tools.LookPath = func(binary string) (string, error) {
		for _, m := range missing {
			if m == binary {
				return "", exec.ErrNotFound
			}
		}
		return "/usr/local/bin/" + binary, nil
	}
}

func TestToolCheck(t *testing.T) {
	buf := &bytes.Buffer{}
	printer.SetOutput(buf)
	defer printer.SetOutput(&bytes.Buffer{})

	stubLookPath(t)
	require.Nil(t, ToolCheck())
	for _, binary := range tools.Required {
		assert.Contains(t, buf.String(), "/usr/local/bin/"+binary)
	}

	buf.Reset()
	stubLookPath(t, "argocd", "helm")
	err := ToolCheck()
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "2 required tool(s)")
	assert.Contains(t, buf.String(), "not found")
	assert.NotContains(t, buf.String(), "/usr/local/bin/argocd")
}
