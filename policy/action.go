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

package policy

import (
	"fmt"
	"math"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
)

const (
	// ErrUnknownAction is the kind of errors caused by an action outside the action set of a policy.
	ErrUnknownAction = errors.ConstError("unknown action")
	// ErrInvalidObservation is the kind of errors caused by an observation that does not
	// resolve to a row of the weight table.
	ErrInvalidObservation = errors.ConstError("invalid observation")
)

type kindError struct {
	kind    errors.ConstError
	message string
}

func (e *kindError) Error() string {
	return string(e.kind) + ": " + e.message
}

func (e *kindError) Unwrap() error {
	return e.kind
}

func unknownActionf(format string, args ...any) error {
	return &kindError{kind: ErrUnknownAction, message: fmt.Sprintf(format, args...)}
}

func invalidObservationf(format string, args ...any) error {
	return &kindError{kind: ErrInvalidObservation, message: fmt.Sprintf(format, args...)}
}

// ActionMap is a bijection between environment actions and zero-based action indices.
type ActionMap struct {
	actions []int
	indices map[int]int
}

// NewActionMap creates the bijection. The i-th action maps to index i. Actions must
// be distinct and there must be at least one.
func NewActionMap(actions ...int) (*ActionMap, error) {
	if len(actions) == 0 {
		return nil, errors.NotValidf("empty action set")
	}
	if mapset.NewSet(actions...).Cardinality() != len(actions) {
		return nil, errors.NotValidf("duplicate actions in %v", actions)
	}
	m := &ActionMap{
		actions: append([]int(nil), actions...),
		indices: make(map[int]int, len(actions)),
	}
	for i, action := range actions {
		m.indices[action] = i
	}
	return m, nil
}

// RangeActionMap maps actions 0, 1, ..., n-1 to themselves.
func RangeActionMap(n int) (*ActionMap, error) {
	actions := make([]int, n)
	for i := range actions {
		actions[i] = i
	}
	return NewActionMap(actions...)
}

func (m *ActionMap) Len() int {
	return len(m.actions)
}

// Index translates an environment action to its zero-based index.
func (m *ActionMap) Index(action int) (int, error) {
	index, exist := m.indices[action]
	if !exist {
		return 0, unknownActionf("%d is not one of %v", action, m.actions)
	}
	return index, nil
}

// Action translates a zero-based index back to the environment action.
func (m *ActionMap) Action(index int) int {
	return m.actions[index]
}

func (m *ActionMap) Actions() []int {
	return m.actions
}

// ActionValuer supplies per-action values (logits) for an observation.
type ActionValuer interface {
	NumActions() int
	ActionValues(observation float64) ([]float64, error)
}

// Table is a row-major weight table with one row per discrete observation and one
// column per action index. Observation o selects row o.
type Table struct {
	weights         []float64
	numObservations int
	numActions      int
}

// NewTable copies weights into a numObservations x numActions table.
func NewTable(weights []float64, numObservations, numActions int) (*Table, error) {
	if numObservations <= 0 || numActions <= 0 {
		return nil, errors.NotValidf("table shape %dx%d", numObservations, numActions)
	}
	if len(weights) != numObservations*numActions {
		return nil, errors.NotValidf("%d weights for a %dx%d table", len(weights), numObservations, numActions)
	}
	return &Table{
		weights:         append([]float64(nil), weights...),
		numObservations: numObservations,
		numActions:      numActions,
	}, nil
}

func (t *Table) NumObservations() int {
	return t.numObservations
}

func (t *Table) NumActions() int {
	return t.numActions
}

// Row resolves an observation to a row. The observation must be a whole number in
// [0, NumObservations).
func (t *Table) Row(observation float64) (int, error) {
	if observation != math.Trunc(observation) || observation < 0 || observation >= float64(t.numObservations) {
		return 0, invalidObservationf("%v is not a row of a table with %d observations", observation, t.numObservations)
	}
	return int(observation), nil
}

// Weight returns the raw weight of an action index at a row.
func (t *Table) Weight(row, index int) float64 {
	return t.weights[row*t.numActions+index]
}

// ActionValues returns the row of an observation. The returned slice must not be modified.
func (t *Table) ActionValues(observation float64) ([]float64, error) {
	row, err := t.Row(observation)
	if err != nil {
		return nil, err
	}
	return t.weights[row*t.numActions : (row+1)*t.numActions], nil
}
