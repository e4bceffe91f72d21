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

package mock

import (
	"github.com/stretchr/testify/mock"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
)

// Spawner records every step it's asked to spawn and returns canned
// results instead of starting processes
type Spawner struct {
	mock.Mock
}

func (m *Spawner) Spawn(s step.Step) (step.Result, error) {
	args := m.Called(s.CommandString())
	return args.Get(0).(step.Result), args.Error(1)
}

// Queues results for the given commands, in order
func (m *Spawner) Returns(command string, results ...step.Result) *Spawner {
	for _, result := range results {
		m.On("Spawn", command).Return(result, nil).Once()
	}
	return m
}

// Returns the commands spawned so far, in order
func (m *Spawner) Commands() []string {
	commands := make([]string, 0, len(m.Calls))
	for _, call := range m.Calls {
		commands = append(commands, call.Arguments.String(0))
	}
	return commands
}
