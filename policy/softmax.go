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
	"sync"

	"github.com/juju/errors"
	"github.com/seldonian-go/engine/common/floats"
	"github.com/seldonian-go/engine/common/log"
	"github.com/seldonian-go/engine/common/random"
	"go.uber.org/zap"
)

// Policy selects actions and reports the probability of selecting them.
type Policy interface {
	ChooseAction(observation float64) (int, error)
	ProbabilityOf(observation float64, action int) (float64, error)
}

// ActionProbabilities converts action values into a softmax distribution:
//
//	p_i = exp(v_i - max(v)) / sum_j exp(v_j - max(v))
//
// Subtracting the maximum keeps every exponent non-positive, so large values do not
// overflow, and leaves the distribution unchanged.
func ActionProbabilities(values []float64) []float64 {
	terms := make([]float64, len(values))
	floats.ExpTo(values, floats.Max(values), terms)
	denom := floats.Sum(terms)
	for i := range terms {
		terms[i] /= denom
	}
	return terms
}

// Softmax samples actions from the softmax of the action values of an observation.
type Softmax struct {
	valuer  ActionValuer
	actions *ActionMap
	rng     random.RandomGenerator
}

// NewSoftmax creates a softmax policy. The valuer must produce one value per action.
func NewSoftmax(valuer ActionValuer, actions *ActionMap, seed int64) (*Softmax, error) {
	if valuer.NumActions() != actions.Len() {
		return nil, errors.NotValidf("%d action values for %d actions", valuer.NumActions(), actions.Len())
	}
	return &Softmax{
		valuer:  valuer,
		actions: actions,
		rng:     random.NewRandomGenerator(seed),
	}, nil
}

func (p *Softmax) NumActions() int {
	return p.actions.Len()
}

// ActionValues returns the action values of an observation.
func (p *Softmax) ActionValues(observation float64) ([]float64, error) {
	values, err := p.valuer.ActionValues(observation)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(values) != p.NumActions() {
		return nil, errors.NotValidf("%d action values for %d actions", len(values), p.NumActions())
	}
	return values, nil
}

// ChooseAction draws an action for an observation.
func (p *Softmax) ChooseAction(observation float64) (int, error) {
	values, err := p.ActionValues(observation)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return p.ChooseActionFromValues(values)
}

// ChooseActionFromValues draws an action from a list of action values.
func (p *Softmax) ChooseActionFromValues(values []float64) (int, error) {
	if len(values) != p.NumActions() {
		return 0, errors.NotValidf("%d action values for %d actions", len(values), p.NumActions())
	}
	index := spin(ActionProbabilities(values), p.rng.Float64())
	return p.actions.Action(index), nil
}

// ProbabilityOf returns the probability of choosing an action at an observation.
func (p *Softmax) ProbabilityOf(observation float64, action int) (float64, error) {
	index, err := p.actions.Index(action)
	if err != nil {
		return 0, err
	}
	values, err := p.ActionValues(observation)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return ActionProbabilities(values)[index], nil
}

// spin scans the cumulative probabilities in action order and returns the first
// action with positive probability whose cumulative probability reaches u.
func spin(probs []float64, u float64) int {
	var cumulative float64
	for i, p := range probs {
		cumulative += p
		if p > 0 && cumulative >= u {
			return i
		}
	}
	// probabilities are not normalized
	log.Logger().Error("roulette wheel exhausted",
		zap.Float64s("probabilities", probs),
		zap.Float64("draw", u),
		zap.Float64("cumulative", cumulative))
	panic(fmt.Sprintf("policy: roulette wheel exhausted: draw %v, cumulative %v, probabilities %v", u, cumulative, probs))
}

// DiscreteSoftmax is a softmax policy over a table of discrete observations and
// actions. Normalization constants are memoized per row. The memo belongs to the
// table the policy was created with; create a new policy for new weights.
type DiscreteSoftmax struct {
	*Softmax
	table *Table

	mu     sync.RWMutex
	cached []bool
	maxes  []float64
	denoms []float64
}

func NewDiscreteSoftmax(table *Table, actions *ActionMap, seed int64) (*DiscreteSoftmax, error) {
	softmax, err := NewSoftmax(table, actions, seed)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &DiscreteSoftmax{
		Softmax: softmax,
		table:   table,
		cached:  make([]bool, table.NumObservations()),
		maxes:   make([]float64, table.NumObservations()),
		denoms:  make([]float64, table.NumObservations()),
	}, nil
}

// normalization returns the maximum weight of a row and the sum of exp(weight - max)
// over the row.
func (p *DiscreteSoftmax) normalization(row int) (float64, float64) {
	p.mu.RLock()
	if p.cached[row] {
		maxValue, denom := p.maxes[row], p.denoms[row]
		p.mu.RUnlock()
		return maxValue, denom
	}
	p.mu.RUnlock()
	// concurrent misses store identical values
	values := p.table.weights[row*p.table.numActions : (row+1)*p.table.numActions]
	maxValue := floats.Max(values)
	terms := make([]float64, len(values))
	floats.ExpTo(values, maxValue, terms)
	denom := floats.Sum(terms)
	p.mu.Lock()
	p.cached[row], p.maxes[row], p.denoms[row] = true, maxValue, denom
	p.mu.Unlock()
	return maxValue, denom
}

// ProbabilityOf returns the probability of choosing an action at an observation from
// the memoized normalization constant of its row.
func (p *DiscreteSoftmax) ProbabilityOf(observation float64, action int) (float64, error) {
	index, err := p.actions.Index(action)
	if err != nil {
		return 0, err
	}
	row, err := p.table.Row(observation)
	if err != nil {
		return 0, err
	}
	maxValue, denom := p.normalization(row)
	return math.Exp(p.table.Weight(row, index)-maxValue) / denom, nil
}
