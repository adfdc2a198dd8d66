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

package statistic

import (
	"context"

	"github.com/juju/errors"
	"github.com/seldonian-go/engine/common/floats"
	"github.com/seldonian-go/engine/common/parallel"
	"github.com/seldonian-go/engine/dataset"
	"github.com/seldonian-go/engine/model"
)

// ImportanceWeightedReturn is the ordinary importance sampling estimate of one
// episode: the product of probs[t] / pis[t] over all steps times the discounted
// return. probs are the probabilities of the recorded actions under the
// evaluation policy.
func ImportanceWeightedReturn(probs []float64, episode *dataset.Episode, gamma float64) float64 {
	ratios := make([]float64, len(probs))
	floats.DivTo(probs, episode.Pis(), ratios)
	return floats.Prod(ratios) * episode.DiscountedReturn(gamma)
}

// ImportanceWeightedReturns estimates the return of the policy parameterized by
// theta on every episode with nJobs workers. Results keep episode order.
func ImportanceWeightedReturns(ctx context.Context, m model.PolicyModel, theta []float64, data *dataset.Episodic, nJobs int) ([]float64, error) {
	probabilities := func(episode *dataset.Episode) ([]float64, error) {
		return m.ActionProbabilities(theta, episode.States(), episode.Actions())
	}
	if factory, ok := m.(model.PolicyFactory); ok {
		// one policy for all episodes shares its memoized normalizers
		p, err := factory.Policy(theta, 0)
		if err != nil {
			return nil, errors.Trace(err)
		}
		probabilities = func(episode *dataset.Episode) ([]float64, error) {
			probs := make([]float64, episode.Len())
			for t, observation := range episode.States() {
				prob, err := p.ProbabilityOf(observation, episode.Actions()[t])
				if err != nil {
					return nil, errors.Annotatef(err, "step %d", t)
				}
				probs[t] = prob
			}
			return probs, nil
		}
	}
	gamma := m.Gamma()
	return parallel.Map(ctx, data.Episodes(), nJobs, func(i int, episode *dataset.Episode) (float64, error) {
		probs, err := probabilities(episode)
		if err != nil {
			return 0, errors.Annotatef(err, "episode %d", i)
		}
		if len(probs) != episode.Len() {
			return 0, dataset.ShapeMismatchf("%d probabilities for %d steps in episode %d", len(probs), episode.Len(), i)
		}
		return ImportanceWeightedReturn(probs, episode, gamma), nil
	})
}
