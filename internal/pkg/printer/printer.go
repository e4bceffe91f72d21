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

package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/colorstring"
)

var writer io.Writer = os.Stdout

var colorize = &colorstring.Colorize{
	Colors: colorstring.DefaultColors,
	Reset:  true,
}

// Redirects operator-facing output, e.g. for tests
func SetOutput(out io.Writer) {
	writer = out
}

// Disables colour codes, leaving the markup stripped
func SetPlain(plain bool) {
	colorize.Disable = plain
}

// Colours the format, never the args, so text such as a command line is
// printed exactly as given even when it looks like colour markup
func Fprintf(format string, args ...interface{}) (int, error) {
	if len(args) == 0 {
		return io.WriteString(writer, colorize.Color(format))
	}
	return fmt.Fprintf(writer, colorize.Color(format), args...)
}

func Fprintln(text string) (int, error) {
	return io.WriteString(writer, colorize.Color(text)+"\n")
}
