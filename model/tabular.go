// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"github.com/juju/errors"
	"github.com/seldonian-go/engine/dataset"
	"github.com/seldonian-go/engine/policy"
)

// TabularSoftmax is a softmax policy over a finite set of observations. Theta is
// a row-major table of action values with one row per observation and one
// column per action.
type TabularSoftmax struct {
	numObservations int
	actions         *policy.ActionMap
	gamma           float64
}

func NewTabularSoftmax(numObservations int, actions *policy.ActionMap, gamma float64) (*TabularSoftmax, error) {
	if numObservations <= 0 {
		return nil, errors.NotValidf("%d observations", numObservations)
	}
	if actions == nil {
		return nil, errors.NotValidf("nil action set")
	}
	if gamma < 0 || gamma > 1 {
		return nil, errors.NotValidf("discount factor %v", gamma)
	}
	return &TabularSoftmax{
		numObservations: numObservations,
		actions:         actions,
		gamma:           gamma,
	}, nil
}

func (m *TabularSoftmax) Name() string {
	return TabularSoftmaxName
}

func (m *TabularSoftmax) NumParams() int {
	return m.numObservations * m.actions.Len()
}

func (m *TabularSoftmax) Gamma() float64 {
	return m.gamma
}

func (m *TabularSoftmax) Actions() *policy.ActionMap {
	return m.actions
}

// Policy builds the policy parameterized by theta. Its memoized normalizers
// belong to this theta only.
func (m *TabularSoftmax) Policy(theta []float64, seed int64) (policy.Policy, error) {
	if len(theta) != m.NumParams() {
		return nil, dataset.ShapeMismatchf("%d parameters for a %dx%d table", len(theta), m.numObservations, m.actions.Len())
	}
	table, err := policy.NewTable(theta, m.numObservations, m.actions.Len())
	if err != nil {
		return nil, errors.Trace(err)
	}
	p, err := policy.NewDiscreteSoftmax(table, m.actions, seed)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return p, nil
}

func (m *TabularSoftmax) ActionProbabilities(theta, observations []float64, actions []int) ([]float64, error) {
	if len(observations) != len(actions) {
		return nil, dataset.ShapeMismatchf("%d observations and %d actions", len(observations), len(actions))
	}
	p, err := m.Policy(theta, 0)
	if err != nil {
		return nil, errors.Trace(err)
	}
	probs := make([]float64, len(observations))
	for i := range observations {
		probs[i], err = p.ProbabilityOf(observations[i], actions[i])
		if err != nil {
			return nil, errors.Annotatef(err, "step %d", i)
		}
	}
	return probs, nil
}
