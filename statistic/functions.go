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
	"math"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/seldonian-go/engine/common/floats"
	"github.com/seldonian-go/engine/dataset"
	"github.com/seldonian-go/engine/model"
)

// SquaredErrors returns (ŷ - y)² for every row.
func SquaredErrors(predictions, labels []float64) []float64 {
	ret := make([]float64, len(predictions))
	floats.SubTo(predictions, labels, ret)
	floats.SquareTo(ret, ret)
	return ret
}

// Errors returns ŷ - y for every row.
func Errors(predictions, labels []float64) []float64 {
	ret := make([]float64, len(predictions))
	floats.SubTo(predictions, labels, ret)
	return ret
}

// PositiveRates returns ŷ for every row.
func PositiveRates(predictions []float64) []float64 {
	return append([]float64{}, predictions...)
}

// NegativeRates returns 1 - ŷ for every row.
func NegativeRates(predictions []float64) []float64 {
	ret := make([]float64, len(predictions))
	floats.OneMinusTo(predictions, ret)
	return ret
}

// FalsePositiveRates returns ŷ for every row labeled negative.
func FalsePositiveRates(predictions, labels []float64) []float64 {
	return floats.Gather(predictions, negatives(labels))
}

// FalseNegativeRates returns 1 - ŷ for every row labeled positive.
func FalseNegativeRates(predictions, labels []float64) []float64 {
	return NegativeRates(floats.Gather(predictions, positives(labels)))
}

// TruePositiveRates returns ŷ for every row labeled positive.
func TruePositiveRates(predictions, labels []float64) []float64 {
	return floats.Gather(predictions, positives(labels))
}

// TrueNegativeRates returns 1 - ŷ for every row labeled negative.
func TrueNegativeRates(predictions, labels []float64) []float64 {
	return NegativeRates(floats.Gather(predictions, negatives(labels)))
}

// positives returns indices of rows labeled 1 in row order.
func positives(labels []float64) []int {
	return lo.Filter(lo.Range(len(labels)), func(i, _ int) bool {
		return labels[i] == 1
	})
}

// negatives returns indices of rows not labeled 1 in row order.
func negatives(labels []float64) []int {
	return lo.Filter(lo.Range(len(labels)), func(i, _ int) bool {
		return labels[i] != 1
	})
}

// LogisticLosses returns -y log(h) - (1-y) log(1-h) for every row, where
// h = sigmoid(theta[0] + x theta[1:]).
func LogisticLosses(theta []float64, features [][]float64, labels []float64) ([]float64, error) {
	if len(features) != len(labels) {
		return nil, dataset.ShapeMismatchf("%d rows and %d labels", len(features), len(labels))
	}
	h, err := model.Linear(theta, features)
	if err != nil {
		return nil, errors.Trace(err)
	}
	floats.SigmoidTo(h, h)
	for i, y := range labels {
		h[i] = -y*math.Log(h[i]) - (1-y)*math.Log(1-h[i])
	}
	return h, nil
}
