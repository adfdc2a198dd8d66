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
	"gonum.org/v1/gonum/mat"
)

// Gradient returns the gradient of the scalar statistic with respect to theta.
// Supported:
//   - Mean_Squared_Error of a linear regression: (2/n) [1|X]ᵀ(ŷ - y)
//   - logistic_loss: (1/n) [1|X]ᵀ(h - y)
func Gradient(kind Kind, m model.Model, theta []float64, data dataset.Dataset) ([]float64, error) {
	var scale float64
	var predict func([]float64, [][]float64) ([]float64, error)
	switch kind {
	case MeanSquaredError:
		if _, ok := m.(model.LinearRegression); !ok {
			return nil, errors.NotImplementedf("gradient of %v for %T", kind, m)
		}
		scale, predict = 2, model.LinearRegression{}.Predict
	case LogisticLoss:
		scale, predict = 1, model.LogisticRegression{}.Predict
	default:
		return nil, errors.NotImplementedf("gradient of %v", kind)
	}
	t, err := tabular(data)
	if err != nil {
		return nil, errors.Annotatef(err, "gradient of %v", kind)
	}
	design, err := model.DesignMatrix(t.Features())
	if err != nil {
		return nil, errors.Trace(err)
	}
	predictions, err := predict(theta, t.Features())
	if err != nil {
		return nil, errors.Trace(err)
	}
	residuals := make([]float64, len(predictions))
	floats.SubTo(predictions, t.Labels(), residuals)
	var gradient mat.VecDense
	gradient.MulVec(design.T(), mat.NewVecDense(len(residuals), residuals))
	gradient.ScaleVec(scale/float64(t.Count()), &gradient)
	return gradient.RawVector().Data, nil
}
