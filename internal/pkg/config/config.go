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

package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/imdario/mergo"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
)

const (
	AppName    = "clusterctl"
	envPrefix  = "CLUSTERCTL"
	configName = "config.toml"
)

// Keys in the config file
const (
	TerraformingPath              = "terraforming-path"
	KubernetesDeploymentsPath     = "kubernetes-deployments-path"
	SecureManifestsPath           = "secure-manifests-path"
	KubernetesDeploymentsRevision = "kubernetes-deployments-revision"
	KubernetesDeploymentsRepo     = "kubernetes-deployments-repo"
	KubernetesDeploymentsSSHKey   = "kubernetes-deployments-ssh-key"
	AssetsCachePath               = "assets-cache-path"
	InfraProfile                  = "infra-profile"
	V1Profile                     = "v1-profile"
	Region                        = "region"
	ScratchDir                    = "scratch-dir"
	Clusters                      = "clusters"
	TerraformPlanArgs             = "terraform-plan-args"
)

var DefaultClusters = []string{
	"development0",
	"development1",
	"development2",
	"production0",
	"production1",
	"production2",
}

// Config holds the paths and AWS profiles the run-books need
type Config struct {
	TerraformingPath              string   `mapstructure:"terraforming-path"`
	KubernetesDeploymentsPath     string   `mapstructure:"kubernetes-deployments-path"`
	SecureManifestsPath           string   `mapstructure:"secure-manifests-path"`
	KubernetesDeploymentsRevision string   `mapstructure:"kubernetes-deployments-revision"`
	KubernetesDeploymentsRepo     string   `mapstructure:"kubernetes-deployments-repo"`
	KubernetesDeploymentsSSHKey   string   `mapstructure:"kubernetes-deployments-ssh-key"`
	AssetsCachePath               string   `mapstructure:"assets-cache-path"`
	InfraProfile                  string   `mapstructure:"infra-profile"`
	V1Profile                     string   `mapstructure:"v1-profile"`
	Region                        string   `mapstructure:"region"`
	ScratchDir                    string   `mapstructure:"scratch-dir"`
	Clusters                      []string `mapstructure:"clusters"`
	TerraformPlanArgs             string   `mapstructure:"terraform-plan-args"`
}

// Returns the directory holding the config file and cached assets
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", AppName)
	}

	return filepath.Join(home, ".config", AppName)
}

// Returns the default path to the config file
func DefaultPath() string {
	return filepath.Join(DefaultDir(), configName)
}

// Creates a viper instance with defaults and env var bindings. Env vars are
// named e.g. CLUSTERCTL_INFRA_PROFILE.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigType("toml")

	// viper only resolves env vars for keys it already knows about, so every
	// key gets a default
	for _, key := range []string{TerraformingPath, KubernetesDeploymentsPath,
		SecureManifestsPath, KubernetesDeploymentsRevision, KubernetesDeploymentsSSHKey,
		InfraProfile, V1Profile, TerraformPlanArgs} {
		v.SetDefault(key, "")
	}

	v.SetDefault(KubernetesDeploymentsRepo, "git@github.com:paperlesspost/kubernetes-deployments")
	v.SetDefault(KubernetesDeploymentsRevision, "HEAD")
	v.SetDefault(AssetsCachePath, filepath.Join(DefaultDir(), "assets"))
	v.SetDefault(Region, "us-east-1")
	v.SetDefault(ScratchDir, os.TempDir())
	v.SetDefault(Clusters, DefaultClusters)

	return v
}

// Load reads the config file at the given path then merges any non-empty
// overrides (e.g. from CLI flags) over it
func Load(v *viper.Viper, path string, overrides *Config) (*Config, error) {
	v.SetConfigFile(path)

	err := v.ReadInConfig()
	if err != nil {
		return nil, errors.Wrapf(err, "Error loading configuration from '%s'", path)
	}

	conf := &Config{}
	err = v.Unmarshal(conf)
	if err != nil {
		return nil, errors.Wrapf(err, "Error unmarshalling config from '%s'", path)
	}

	if overrides != nil {
		err = mergo.Merge(conf, overrides, mergo.WithOverride)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	log.Logger.Debugf("Loaded config from '%s': %#v", path, conf)

	return conf, nil
}

func (c *Config) values() map[string]string {
	return map[string]string{
		TerraformingPath:              c.TerraformingPath,
		KubernetesDeploymentsPath:     c.KubernetesDeploymentsPath,
		SecureManifestsPath:           c.SecureManifestsPath,
		KubernetesDeploymentsRevision: c.KubernetesDeploymentsRevision,
		KubernetesDeploymentsRepo:     c.KubernetesDeploymentsRepo,
		KubernetesDeploymentsSSHKey:   c.KubernetesDeploymentsSSHKey,
		AssetsCachePath:               c.AssetsCachePath,
		InfraProfile:                  c.InfraProfile,
		V1Profile:                     c.V1Profile,
		Region:                        c.Region,
		ScratchDir:                    c.ScratchDir,
	}
}

// Require returns an error naming every given key that has no value
func (c *Config) Require(keys ...string) error {
	values := c.values()
	missing := make([]string, 0)

	for _, key := range keys {
		value, ok := values[key]
		if !ok {
			return errors.Errorf("Unknown config key '%s'", key)
		}
		if value == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.Errorf("Missing required config values: %s",
			strings.Join(missing, ", "))
	}

	return nil
}

// Parses the extra terraform plan args as a shell would
func (c *Config) PlanArgs() ([]string, error) {
	if strings.TrimSpace(c.TerraformPlanArgs) == "" {
		return []string{}, nil
	}

	args, err := shellwords.Parse(c.TerraformPlanArgs)
	if err != nil {
		return nil, errors.Wrapf(err, "Error parsing %s '%s'", TerraformPlanArgs,
			c.TerraformPlanArgs)
	}

	return args, nil
}
