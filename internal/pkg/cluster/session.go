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

package cluster

const (
	KubeconfigEnvVar = "KUBECONFIG"
	AWSProfileEnvVar = "AWS_PROFILE"
)

// Session carries what the external tools need to talk to one cluster. It's
// passed explicitly to every command that needs it rather than being set in
// our own process environment.
type Session struct {
	ClusterID  string
	Profile    string
	Kubeconfig string
}

// Returns the env var overlay for commands that talk to the cluster
func (s Session) Env() map[string]string {
	env := map[string]string{}

	if s.Kubeconfig != "" {
		env[KubeconfigEnvVar] = s.Kubeconfig
	}

	return env
}

// Returns the env var overlay for commands that talk to AWS
func (s Session) AWSEnv() map[string]string {
	env := map[string]string{}

	if s.Profile != "" {
		env[AWSProfileEnvVar] = s.Profile
	}

	return env
}
