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
	"github.com/spf13/cobra"
	"github.com/sugarkube/clusterctl/internal/pkg/printer"
	"github.com/sugarkube/clusterctl/internal/pkg/program"
	"github.com/sugarkube/clusterctl/internal/pkg/workflow"
)

func newToolCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tool-check",
		Short: "Check for required tools on PATH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := workflow.ToolCheck()
			if err == nil {
				return nil
			}

			_, err = printer.Fprintf("\n[red]%s\n", err)
			if err != nil {
				return err
			}

			// the report has already been printed
			return program.SilentError{}
		},
	}
}
