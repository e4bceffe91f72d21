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
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
)

// Creates a directory and any parents if it doesn't exist
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.Errorf("'%s' exists but isn't a directory", dir)
		}
		return nil
	}

	if !os.IsNotExist(err) {
		return errors.WithStack(err)
	}

	log.Logger.Debugf("Creating directory '%s'", dir)

	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return errors.Wrapf(err, "Error creating directory '%s'", dir)
	}

	return nil
}

// Search for files in a directory whose names match a regex, optionally
// recursively. Returns sorted absolute paths.
func FindFilesByPattern(rootDir string, pattern string, recursive bool) ([]string, error) {

	log.Logger.Debugf("Searching for files matching regex '%s' under dir '%s'",
		pattern, rootDir)

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "Bad file pattern '%s'", pattern)
	}

	results := make([]string, 0)

	if recursive {
		err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return errors.WithStack(err)
			}

			if info.IsDir() {
				return nil
			}

			if re.MatchString(info.Name()) {
				results = append(results, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.WithStack(err)
		}
	} else {
		files, err := ioutil.ReadDir(rootDir)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		for _, f := range files {
			if !f.IsDir() && re.MatchString(f.Name()) {
				results = append(results, filepath.Join(rootDir, f.Name()))
			}
		}
	}

	for i, result := range results {
		absResult, err := filepath.Abs(result)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		results[i] = absResult
	}

	sort.Strings(results)

	return results, nil
}
