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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sugarkube/clusterctl/internal/pkg/version"
)

type versionConfig struct {
	concise bool
}

func newVersionCommand() *cobra.Command {
	c := &versionConfig{}

	command := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of clusterctl",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			out := command.OutOrStdout()

			if c.concise {
				_, err := fmt.Fprintln(out, version.Version)
				return err
			}

			_, err := fmt.Fprintf(out, "Build Date: %s\nGit Commit: %s\nVersion: %s\n"+
				"Go Version: %s\nOS / Arch: %s\n", version.BuildDate, version.GitCommit,
				version.Version, version.GoVersion, version.OsArch)
			return err
		},
	}

	f := command.Flags()
	// -c is taken by the persistent --config flag
	f.BoolVar(&c.concise, "concise", false, "only print the version")

	return command
}
