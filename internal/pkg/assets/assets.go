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

package assets

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/cluster"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
	"github.com/sugarkube/clusterctl/internal/pkg/runner"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
	"github.com/sugarkube/clusterctl/internal/pkg/tools"
	"github.com/sugarkube/clusterctl/internal/pkg/utils"
)

// the key of the kubeconfig in the assets bucket, also used as the cached
// file name
const KubeconfigKey = "kubeconfig"

// Finds the bucket holding the assets the installer generated for a cluster
func FindBucket(query utils.QueryFunc, profile string, clusterID string) (string, error) {
	aws := tools.AWS{Profile: profile}

	out, err := query(tools.AWSBinary, aws.ListBucketsArgs(), aws.Env())
	if err != nil {
		return "", errors.Wrap(err, "Listing buckets with the aws cli failed")
	}

	for _, bucket := range strings.Fields(out) {
		if cluster.IsAssetsBucket(bucket, clusterID) {
			log.Logger.Debugf("Found assets bucket '%s' for cluster '%s'",
				bucket, clusterID)
			return bucket, nil
		}
	}

	return "", errors.Errorf("Couldn't locate the assets bucket for cluster '%s'",
		clusterID)
}

// Returns the path a cluster's kubeconfig is cached at
func KubeconfigPath(cachePath string, clusterID string) string {
	return filepath.Join(cachePath, clusterID, KubeconfigKey)
}

// Fetcher downloads a cluster's kubeconfig into the local assets cache
type Fetcher struct {
	Runner    *runner.Runner
	Query     utils.QueryFunc
	CachePath string
	Profile   string
}

// Downloads the kubeconfig for a cluster and returns a session that points
// at it. Skipping the download reuses whatever is already cached.
func (f Fetcher) Fetch(clusterID string) (cluster.Session, error) {
	bucket, err := FindBucket(f.Query, f.Profile, clusterID)
	if err != nil {
		return cluster.Session{}, errors.WithStack(err)
	}

	path := KubeconfigPath(f.CachePath, clusterID)
	err = utils.EnsureDir(filepath.Dir(path))
	if err != nil {
		return cluster.Session{}, errors.WithStack(err)
	}

	aws := tools.AWS{Profile: f.Profile}
	s, err := aws.GetObject("Download the kubeconfig?", step.Success(), bucket,
		KubeconfigKey, path)
	if err != nil {
		return cluster.Session{}, errors.WithStack(err)
	}

	_, err = f.Runner.Run(s)
	if err != nil {
		return cluster.Session{}, errors.WithStack(err)
	}

	return cluster.Session{
		ClusterID:  clusterID,
		Profile:    f.Profile,
		Kubeconfig: path,
	}, nil
}
