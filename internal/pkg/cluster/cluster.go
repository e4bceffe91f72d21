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

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/gate"
)

const (
	DevelopmentNamespace = "development"
	ProductionNamespace  = "production"
)

// Returns an error unless the cluster id is one of the known ids
func Validate(clusterID string, known []string) error {
	for _, id := range known {
		if id == clusterID {
			return nil
		}
	}

	return errors.Errorf("Unknown cluster id '%s'. Expected one of: %s",
		clusterID, strings.Join(known, ", "))
}

// Asks the operator to pick one of the known cluster ids
func Pick(p gate.Prompter, known []string) (string, error) {
	if len(known) == 0 {
		return "", errors.New("No cluster ids are configured")
	}

	idx, err := p.Choose("Select a cluster id", known)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if idx < 0 || idx >= len(known) {
		return "", errors.Errorf("invalid choice %d", idx)
	}

	return known[idx], nil
}

// Returns the cluster id if it's set and valid, otherwise prompts for one
func Resolve(p gate.Prompter, clusterID string, known []string) (string, error) {
	if clusterID == "" {
		return Pick(p, known)
	}

	err := Validate(clusterID, known)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return clusterID, nil
}

// Returns the namespace apps are deployed to by default on a cluster, which is
// derived from the cluster id's prefix
func DefaultNamespace(clusterID string) (string, error) {
	if strings.HasPrefix(clusterID, DevelopmentNamespace) {
		return DevelopmentNamespace, nil
	}

	if strings.HasPrefix(clusterID, ProductionNamespace) {
		return ProductionNamespace, nil
	}

	return "", errors.Errorf("Can't derive a default namespace for cluster id '%s'", clusterID)
}

// Returns true if a bucket holds the generated assets for the cluster. Asset
// buckets are named 'a<cluster id>' followed by a random suffix.
func IsAssetsBucket(bucket string, clusterID string) bool {
	return strings.HasPrefix(bucket, "a"+clusterID)
}

// Returns the AWS console URL listing the ELBs Kubernetes created for the
// cluster
func ELBConsoleURL(region string, clusterID string) string {
	return fmt.Sprintf("https://console.aws.amazon.com/ec2/home?region=%s"+
		"#LoadBalancers:tag:kubernetes.io/cluster/%s=*", region, clusterID)
}
