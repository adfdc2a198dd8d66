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
	"github.com/seldonian-go/engine/common/floats"
)

// LinearRegression predicts theta[0] + x theta[1:].
type LinearRegression struct{}

func (LinearRegression) Name() string {
	return LinearRegressionName
}

func (LinearRegression) NumParams(numFeatures int) int {
	return numFeatures + 1
}

func (LinearRegression) Predict(theta []float64, features [][]float64) ([]float64, error) {
	predictions, err := Linear(theta, features)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return predictions, nil
}

// LogisticRegression predicts sigmoid(theta[0] + x theta[1:]), the probability
// of the positive class.
type LogisticRegression struct{}

func (LogisticRegression) Name() string {
	return LogisticRegressionName
}

func (LogisticRegression) NumParams(numFeatures int) int {
	return numFeatures + 1
}

func (LogisticRegression) Predict(theta []float64, features [][]float64) ([]float64, error) {
	z, err := Linear(theta, features)
	if err != nil {
		return nil, errors.Trace(err)
	}
	floats.SigmoidTo(z, z)
	return z, nil
}
