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

package log

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/onrik/logrus/filename"
	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	// logs are discarded until the CLI decides otherwise
	Logger = newLogger("info", false, ioutil.Discard)
}

// Replaces the global logger. Logs go to stderr.
func ConfigureLogger(logLevel string, jsonLogs bool) {
	ConfigureLoggerTo(logLevel, jsonLogs, os.Stderr)
}

// Replaces the global logger, writing to the given writer
func ConfigureLoggerTo(logLevel string, jsonLogs bool, out io.Writer) {
	Logger = newLogger(logLevel, jsonLogs, out)
	Logger.Debugf("Configured logger at log level '%s' and json logs=%#v",
		logLevel, jsonLogs)
}

func newLogger(logLevel string, jsonLogs bool, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.AddHook(filename.NewHook())

	var formatter logrus.Formatter
	if jsonLogs {
		formatter = &logrus.JSONFormatter{}
	} else {
		formatter = &logrus.TextFormatter{
			FullTimestamp: true,
		}
	}

	l.Formatter = formatter
	l.Out = out

	SetLevel(l, logLevel)

	return l
}

// Set the log level. 'none' discards all output.
func SetLevel(l *logrus.Logger, level string) {
	switch level {
	case "none":
		l.Out = ioutil.Discard
	case "trace":
		l.Level = logrus.TraceLevel
	case "debug":
		l.Level = logrus.DebugLevel
	case "info":
		l.Level = logrus.InfoLevel
	case "warn", "warning":
		l.Level = logrus.WarnLevel
	case "error":
		l.Level = logrus.ErrorLevel
	case "fatal":
		l.Level = logrus.FatalLevel
	default:
		l.Level = logrus.InfoLevel
	}
}

// Returns true if stack traces should be shown for errors
func IsVerbose() bool {
	return Logger.Level == logrus.DebugLevel || Logger.Level == logrus.TraceLevel
}
