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
	"strings"

	"github.com/juju/errors"
	"github.com/seldonian-go/engine/dataset"
	"github.com/seldonian-go/engine/policy"
	"gonum.org/v1/gonum/mat"
)

const (
	LinearRegressionName   = "linear_regression"
	LogisticRegressionName = "logistic_regression"
	TabularSoftmaxName     = "tabular_softmax"
)

// Model is the interface for all models. A model owns its parameterization
// scheme but never its parameters: theta is passed in on every call and is
// never mutated.
type Model interface {
	// Name returns the registered name of the model.
	Name() string
}

// Predictor is a supervised model. For classification, Predict returns the
// probability of the positive class for each row.
type Predictor interface {
	Model
	// NumParams returns the length of theta for rows of numFeatures features.
	NumParams(numFeatures int) int
	Predict(theta []float64, features [][]float64) ([]float64, error)
}

// PolicyModel is a reinforcement learning model.
type PolicyModel interface {
	Model
	// NumParams returns the length of theta.
	NumParams() int
	// ActionProbabilities returns the probability of actions[i] at observations[i]
	// under the policy parameterized by theta.
	ActionProbabilities(theta, observations []float64, actions []int) ([]float64, error)
	// Gamma returns the discount factor of the environment.
	Gamma() float64
}

// PolicyFactory is a PolicyModel whose policy can be built once for theta and
// shared by concurrent queries.
type PolicyFactory interface {
	PolicyModel
	Policy(theta []float64, seed int64) (policy.Policy, error)
}

// Options are the hyper-parameters of a model built by NewModel.
type Options struct {
	NumObservations int
	Actions         []int
	Gamma           float64
}

// NewModel creates a model by name.
func NewModel(name string, opts Options) (Model, error) {
	switch strings.ToLower(name) {
	case LinearRegressionName:
		return LinearRegression{}, nil
	case LogisticRegressionName:
		return LogisticRegression{}, nil
	case TabularSoftmaxName:
		actions, err := policy.NewActionMap(opts.Actions...)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return NewTabularSoftmax(opts.NumObservations, actions, opts.Gamma)
	default:
		return nil, errors.NotSupportedf("model %s", name)
	}
}

// DesignMatrix returns [1|X], the feature matrix with a leading column of ones
// for the intercept.
func DesignMatrix(features [][]float64) (*mat.Dense, error) {
	if len(features) == 0 {
		return nil, dataset.ShapeMismatchf("no rows")
	}
	numFeatures := len(features[0])
	design := mat.NewDense(len(features), numFeatures+1, nil)
	for i, row := range features {
		if len(row) != numFeatures {
			return nil, dataset.ShapeMismatchf("row %d has %d features, expect %d", i, len(row), numFeatures)
		}
		design.Set(i, 0, 1)
		for j, value := range row {
			design.Set(i, j+1, value)
		}
	}
	return design, nil
}

// Linear computes theta[0] + X theta[1:] for every row of X.
func Linear(theta []float64, features [][]float64) ([]float64, error) {
	if len(features) == 0 {
		return []float64{}, nil
	}
	design, err := DesignMatrix(features)
	if err != nil {
		return nil, errors.Trace(err)
	}
	_, cols := design.Dims()
	if len(theta) != cols {
		return nil, dataset.ShapeMismatchf("%d parameters for %d features", len(theta), cols-1)
	}
	var z mat.VecDense
	z.MulVec(design, mat.NewVecDense(cols, theta))
	return z.RawVector().Data, nil
}
