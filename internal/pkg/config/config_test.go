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

package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
)

func init() {
	log.ConfigureLogger("debug", false)
}

const testConfig = `
terraforming-path = "/src/terraforming"
kubernetes-deployments-path = "/src/kubernetes-deployments"
secure-manifests-path = "/keybase/secure-manifests"
kubernetes-deployments-ssh-key = "/home/ops/.ssh/deploy"
infra-profile = "infra"
v1-profile = "v1"
terraform-plan-args = "-lock-timeout=60s -var 'owner=ops team'"
clusters = ["development0", "production0"]
`

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := ioutil.WriteFile(path, []byte(contents), 0644)
	require.Nil(t, err)
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, testConfig)

	conf, err := Load(NewViper(), path, nil)
	require.Nil(t, err)

	assert.Equal(t, "/src/terraforming", conf.TerraformingPath)
	assert.Equal(t, "/src/kubernetes-deployments", conf.KubernetesDeploymentsPath)
	assert.Equal(t, "/keybase/secure-manifests", conf.SecureManifestsPath)
	assert.Equal(t, "infra", conf.InfraProfile)
	assert.Equal(t, "v1", conf.V1Profile)
	assert.Equal(t, []string{"development0", "production0"}, conf.Clusters)

	// defaults
	assert.Equal(t, "us-east-1", conf.Region)
	assert.Equal(t, "HEAD", conf.KubernetesDeploymentsRevision)
	assert.Equal(t, filepath.Join(DefaultDir(), "assets"), conf.AssetsCachePath)
}

func TestLoadDefaultClusters(t *testing.T) {
	path := writeConfig(t, `infra-profile = "infra"`)

	conf, err := Load(NewViper(), path, nil)
	require.Nil(t, err)
	assert.Equal(t, DefaultClusters, conf.Clusters)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.NotNil(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CLUSTERCTL_INFRA_PROFILE", "from-env")
	path := writeConfig(t, testConfig)

	conf, err := Load(NewViper(), path, nil)
	require.Nil(t, err)
	assert.Equal(t, "from-env", conf.InfraProfile)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, testConfig)

	conf, err := Load(NewViper(), path, &Config{
		InfraProfile: "from-cli",
	})
	require.Nil(t, err)
	assert.Equal(t, "from-cli", conf.InfraProfile)
	// empty overrides leave file values alone
	assert.Equal(t, "v1", conf.V1Profile)
}

func TestRequire(t *testing.T) {
	conf := &Config{
		TerraformingPath: "/src/terraforming",
	}

	assert.Nil(t, conf.Require(TerraformingPath))

	err := conf.Require(TerraformingPath, V1Profile, InfraProfile)
	require.NotNil(t, err)
	assert.Equal(t, "Missing required config values: infra-profile, v1-profile", err.Error())

	assert.NotNil(t, conf.Require("bogus"))
}

func TestPlanArgs(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
		wantErr  bool
	}{
		{"", []string{}, false},
		{"  ", []string{}, false},
		{"-lock-timeout=60s -var 'owner=ops team'", []string{"-lock-timeout=60s", "-var", "owner=ops team"}, false},
		{"-var 'unterminated", nil, true},
	}

	for _, test := range tests {
		conf := &Config{TerraformPlanArgs: test.input}
		actual, err := conf.PlanArgs()
		if test.wantErr {
			assert.NotNil(t, err, "input %q", test.input)
			continue
		}
		assert.Nil(t, err, "input %q", test.input)
		assert.Equal(t, test.expected, actual)
	}
}
