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

package dataset

import (
	"fmt"
	"math"

	"github.com/juju/errors"
	"github.com/samber/lo"
)

// ErrDataShapeMismatch is the kind of every error caused by data whose fields or
// lengths do not fit the computation asked for.
const ErrDataShapeMismatch = errors.ConstError("data shape mismatch")

type shapeMismatchError struct {
	message string
}

func (e *shapeMismatchError) Error() string {
	return string(ErrDataShapeMismatch) + ": " + e.message
}

func (e *shapeMismatchError) Unwrap() error {
	return ErrDataShapeMismatch
}

// ShapeMismatchf returns an error satisfying errors.Is(err, ErrDataShapeMismatch).
func ShapeMismatchf(format string, args ...any) error {
	return &shapeMismatchError{message: fmt.Sprintf(format, args...)}
}

// Dataset is either *Tabular or *Episodic.
type Dataset interface {
	// Count returns the number of observations (rows or episodes).
	Count() int
}

// Tabular is a supervised dataset: one feature vector and one label per row.
// It is read-only once constructed.
type Tabular struct {
	features [][]float64
	labels   []float64
}

// NewTabular creates a tabular dataset from copies of features and labels. Every
// row must have the same width and there must be exactly one label per row.
func NewTabular(features [][]float64, labels []float64) (*Tabular, error) {
	if len(features) != len(labels) {
		return nil, ShapeMismatchf("%d feature rows but %d labels", len(features), len(labels))
	}
	for i := 1; i < len(features); i++ {
		if len(features[i]) != len(features[0]) {
			return nil, ShapeMismatchf("row %d has %d features, expect %d", i, len(features[i]), len(features[0]))
		}
	}
	return &Tabular{
		features: lo.Map(features, func(row []float64, _ int) []float64 {
			return append([]float64(nil), row...)
		}),
		labels: append([]float64(nil), labels...),
	}, nil
}

func (d *Tabular) Count() int {
	return len(d.labels)
}

// NumFeatures returns the width of a feature row.
func (d *Tabular) NumFeatures() int {
	if len(d.features) == 0 {
		return 0
	}
	return len(d.features[0])
}

func (d *Tabular) Features() [][]float64 {
	return d.features
}

func (d *Tabular) Labels() []float64 {
	return d.labels
}

// Episode is one recorded rollout of the behavior policy. All sequences are aligned
// by timestep. It is read-only once constructed.
type Episode struct {
	states  []float64
	actions []int
	rewards []float64
	pis     []float64
}

// NewEpisode creates an episode from copies of its sequences. pis are behavior-policy probabilities of the taken
// actions and must lie in (0, 1].
func NewEpisode(states []float64, actions []int, rewards, pis []float64) (*Episode, error) {
	n := len(states)
	if len(actions) != n || len(rewards) != n || len(pis) != n {
		return nil, ShapeMismatchf("episode has %d states, %d actions, %d rewards and %d pis",
			n, len(actions), len(rewards), len(pis))
	}
	for t, pi := range pis {
		if !(pi > 0 && pi <= 1) {
			return nil, errors.NotValidf("behavior probability %v at timestep %d", pi, t)
		}
	}
	return &Episode{
		states:  append([]float64(nil), states...),
		actions: append([]int(nil), actions...),
		rewards: append([]float64(nil), rewards...),
		pis:     append([]float64(nil), pis...),
	}, nil
}

// Len returns the number of timesteps.
func (e *Episode) Len() int {
	return len(e.states)
}

func (e *Episode) States() []float64 {
	return e.states
}

func (e *Episode) Actions() []int {
	return e.actions
}

func (e *Episode) Rewards() []float64 {
	return e.rewards
}

func (e *Episode) Pis() []float64 {
	return e.pis
}

// DiscountedReturn computes sum_t gamma^t * reward_t.
func (e *Episode) DiscountedReturn(gamma float64) float64 {
	var ret float64
	for t, reward := range e.rewards {
		ret += math.Pow(gamma, float64(t)) * reward
	}
	return ret
}

// Episodic is a collection of episodes in recording order.
type Episodic struct {
	episodes []*Episode
}

func NewEpisodic(episodes []*Episode) *Episodic {
	return &Episodic{episodes: append([]*Episode(nil), episodes...)}
}

func (d *Episodic) Count() int {
	return len(d.episodes)
}

func (d *Episodic) Episodes() []*Episode {
	return d.episodes
}

// CountSteps counts the total number of timesteps across every episode.
func (d *Episodic) CountSteps() int {
	var count int
	for _, episode := range d.episodes {
		count += episode.Len()
	}
	return count
}
