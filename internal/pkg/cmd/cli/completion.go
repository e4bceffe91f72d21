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
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newCompletionsCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "completion [bash|zsh]",
		Short: "Generate a completions script for your shell",
		Long: `To load completion run

. <(clusterctl completion bash)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(clusterctl completion bash)

For zsh, write the script to a file on your fpath, e.g.

clusterctl completion zsh > "${fpath[1]}/_clusterctl"
`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh"},
		RunE: func(command *cobra.Command, args []string) error {
			out := command.OutOrStdout()

			switch args[0] {
			case "bash":
				return errors.WithStack(rootCommand.GenBashCompletion(out))
			case "zsh":
				return errors.WithStack(rootCommand.GenZshCompletion(out))
			}

			return errors.Errorf("Unsupported shell '%s'", args[0])
		},
	}

	c.Aliases = []string{"completions"}

	return c
}
