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

package tools

import (
	"github.com/sugarkube/clusterctl/internal/pkg/cluster"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
)

// AWS builds steps that run the aws CLI with a profile
type AWS struct {
	Profile string
}

func (a AWS) Env() map[string]string {
	return cluster.Session{Profile: a.Profile}.AWSEnv()
}

// Downloads an S3 object to a local file
func (a AWS) GetObject(prompt string, expect step.Expectation, bucket string,
	key string, outPath string) (step.Step, error) {
	argv := []string{AWSBinary, "s3api", "get-object", "--bucket", bucket,
		"--key", key, outPath}
	return newStep(prompt, expect, argv, step.WithEnvMap(a.Env()))
}

// Args for listing bucket names as whitespace-separated text
func (a AWS) ListBucketsArgs() []string {
	return []string{"s3api", "list-buckets", "--query", "Buckets[].Name",
		"--output", "text"}
}
