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

package workflow

import (
	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
)

type stage struct {
	format string
	args   []interface{}
	step   *step.Step
}

// sequence is an ordered list of notes and steps. Every step is built before
// any of them runs so a malformed step is reported before the operator is
// asked anything.
type sequence struct {
	stages []stage
	err    error
}

func newSequence() *sequence {
	return &sequence{}
}

// Queues a note to print before the next step. Only the format may carry
// colour markup.
func (q *sequence) say(format string, args ...interface{}) *sequence {
	q.stages = append(q.stages, stage{format: format, args: args})
	return q
}

// Queues a step. The first builder error is kept and later steps are ignored.
func (q *sequence) then(s step.Step, err error) *sequence {
	if q.err != nil {
		return q
	}

	if err != nil {
		q.err = errors.WithStack(err)
		return q
	}

	q.stages = append(q.stages, stage{step: &s})
	return q
}

// Runs each stage in order, stopping at the first error. An abort at any gate
// means no later step runs.
func (w *Workflow) runSequence(q *sequence) error {
	if q.err != nil {
		return q.err
	}

	for _, st := range q.stages {
		if st.step == nil {
			err := w.say(st.format, st.args...)
			if err != nil {
				return errors.WithStack(err)
			}
			continue
		}

		_, err := w.Runner.Run(*st.step)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}
