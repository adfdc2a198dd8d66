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
	"github.com/juju/errors"
	"github.com/seldonian-go/engine/common/floats"
	"github.com/seldonian-go/engine/dataset"
	"github.com/seldonian-go/engine/model"
)

const (
	FalsePositiveCost = 1
	FalseNegativeCost = 5
)

// WeightedLosses returns the expected cost of a wrong answer on every row:
// FalsePositiveCost * ŷ on rows labeled negative and FalseNegativeCost * (1 - ŷ)
// on rows labeled positive.
func WeightedLosses(predictions, labels []float64) []float64 {
	if len(predictions) != len(labels) {
		panic("statistic: slice lengths do not match")
	}
	ret := make([]float64, len(predictions))
	for i, y := range labels {
		if y == 1 {
			ret[i] = FalseNegativeCost * (1 - predictions[i])
		} else {
			ret[i] = FalsePositiveCost * predictions[i]
		}
	}
	return ret
}

// WeightedLoss is the mean of WeightedLosses over the whole sample. It is an
// objective for classifiers, not a constraint statistic.
func WeightedLoss(m model.Predictor, theta []float64, data *dataset.Tabular) (float64, error) {
	if data == nil {
		return 0, dataset.ShapeMismatchf("features and labels required, got nil")
	}
	predictions, err := m.Predict(theta, data.Features())
	if err != nil {
		return 0, errors.Trace(err)
	}
	if len(predictions) != data.Count() {
		return 0, dataset.ShapeMismatchf("%d predictions for %d rows", len(predictions), data.Count())
	}
	return floats.Mean(WeightedLosses(predictions, data.Labels())), nil
}
