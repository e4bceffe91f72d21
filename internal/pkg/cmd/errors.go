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

/*
Copyright 2017 the Heptio Ark contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/log"
	"github.com/sugarkube/clusterctl/internal/pkg/program"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
)

var (
	exit             = os.Exit
	errOut io.Writer = os.Stderr
)

// CheckError prints err to stderr and exits with code 1 if err is not nil. Otherwise, it is a
// no-op. Aborts and silent errors exit without printing anything.
func CheckError(err error) {
	if err == nil {
		return
	}

	if message := errorMessage(err); message != "" {
		_, err2 := fmt.Fprint(errOut, message)
		if err2 != nil {
			panic(err2)
		}
	}

	exit(1)
}

func errorMessage(err error) string {
	cause := errors.Cause(err)

	if cause == context.Canceled || step.IsUserAbort(err) {
		log.Logger.Debugf("Exiting: %v", err)
		return ""
	}

	if _, ok := cause.(program.SilentError); ok {
		return ""
	}

	if log.IsVerbose() {
		return fmt.Sprintf("An error occurred: %+v\n", err)
	}

	return fmt.Sprintf("An error occurred: %v\n\n"+
		"Run with `-v --log-level debug` for a full stacktrace.\n", err)
}
