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
	"math"
	"time"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/seldonian-go/engine/common/floats"
	"github.com/seldonian-go/engine/common/log"
	"github.com/seldonian-go/engine/dataset"
	"github.com/seldonian-go/engine/model"
	"go.uber.org/zap"
)

type Config struct {
	Jobs int
}

func NewConfig() *Config {
	return &Config{Jobs: 1}
}

func (config *Config) SetJobs(jobs int) *Config {
	config.Jobs = jobs
	return config
}

func (config *Config) LoadDefaultIfNil() *Config {
	if config == nil {
		return NewConfig()
	}
	return config
}

// sampler computes the vector form of a statistic.
type sampler func(ctx context.Context, config *Config, m model.Model, theta []float64, data dataset.Dataset) ([]float64, error)

// catalog maps every kind to its vector form. The scalar form of every
// statistic is the mean of its vector form.
var catalog = [numKinds]sampler{
	MeanSquaredError: predictionSampler(SquaredErrors),
	MeanError:        predictionSampler(Errors),
	PositiveRate: predictionSampler(func(predictions, _ []float64) []float64 {
		return PositiveRates(predictions)
	}),
	NegativeRate: predictionSampler(func(predictions, _ []float64) []float64 {
		return NegativeRates(predictions)
	}),
	FalsePositiveRate:  predictionSampler(FalsePositiveRates),
	FalseNegativeRate:  predictionSampler(FalseNegativeRates),
	TruePositiveRate:   predictionSampler(TruePositiveRates),
	TrueNegativeRate:   predictionSampler(TrueNegativeRates),
	LogisticLoss:       sampleLogisticLoss,
	ImportanceSampling: sampleImportanceSampling,
}

func tabular(data dataset.Dataset) (*dataset.Tabular, error) {
	t, ok := data.(*dataset.Tabular)
	if !ok {
		return nil, dataset.ShapeMismatchf("features and labels required, got %T", data)
	}
	return t, nil
}

func predictionSampler(fn func(predictions, labels []float64) []float64) sampler {
	return func(_ context.Context, _ *Config, m model.Model, theta []float64, data dataset.Dataset) ([]float64, error) {
		t, err := tabular(data)
		if err != nil {
			return nil, err
		}
		predictor, ok := m.(model.Predictor)
		if !ok {
			return nil, errors.NotImplementedf("predict of model %s", m.Name())
		}
		predictions, err := predictor.Predict(theta, t.Features())
		if err != nil {
			return nil, errors.Trace(err)
		}
		if len(predictions) != t.Count() {
			return nil, dataset.ShapeMismatchf("%d predictions for %d rows", len(predictions), t.Count())
		}
		return fn(predictions, t.Labels()), nil
	}
}

func sampleLogisticLoss(_ context.Context, _ *Config, _ model.Model, theta []float64, data dataset.Dataset) ([]float64, error) {
	t, err := tabular(data)
	if err != nil {
		return nil, err
	}
	return LogisticLosses(theta, t.Features(), t.Labels())
}

func sampleImportanceSampling(ctx context.Context, config *Config, m model.Model, theta []float64, data dataset.Dataset) ([]float64, error) {
	episodic, ok := data.(*dataset.Episodic)
	if !ok {
		return nil, dataset.ShapeMismatchf("episodes required, got %T", data)
	}
	policyModel, ok := m.(model.PolicyModel)
	if !ok {
		return nil, errors.NotImplementedf("action probabilities of model %s", m.Name())
	}
	return ImportanceWeightedReturns(ctx, policyModel, theta, episodic, config.Jobs)
}

// Evaluator evaluates statistics of a model at a parameter vector.
type Evaluator struct {
	config *Config
}

func NewEvaluator(config *Config) *Evaluator {
	return &Evaluator{config: config.LoadDefaultIfNil()}
}

// Evaluate returns the scalar form of the named statistic.
func (e *Evaluator) Evaluate(ctx context.Context, m model.Model, name string, theta []float64, data dataset.Dataset) (float64, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return e.EvaluateKind(ctx, m, kind, theta, data)
}

// Sample returns the vector form of the named statistic, one value per
// qualifying row or per episode.
func (e *Evaluator) Sample(ctx context.Context, m model.Model, name string, theta []float64, data dataset.Dataset) ([]float64, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return e.SampleKind(ctx, m, kind, theta, data)
}

func (e *Evaluator) EvaluateKind(ctx context.Context, m model.Model, kind Kind, theta []float64, data dataset.Dataset) (float64, error) {
	values, err := e.sample(ctx, m, kind, theta, data, modeScalar)
	if err != nil {
		return 0, errors.Trace(err)
	}
	result := floats.Mean(values)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		NonFiniteResultsTotal.WithLabelValues(kind.String(), modeScalar).Inc()
		log.Logger().Warn("non-finite statistic",
			zap.Stringer("statistic", kind),
			zap.Int("samples", len(values)),
			zap.Float64("result", result))
	}
	return result, nil
}

func (e *Evaluator) SampleKind(ctx context.Context, m model.Model, kind Kind, theta []float64, data dataset.Dataset) ([]float64, error) {
	values, err := e.sample(ctx, m, kind, theta, data, modeVector)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if n := lo.CountBy(values, isNonFinite); n > 0 {
		NonFiniteResultsTotal.WithLabelValues(kind.String(), modeVector).Inc()
		log.Logger().Warn("non-finite statistic",
			zap.Stringer("statistic", kind),
			zap.Int("samples", len(values)),
			zap.Int("non_finite", n))
	}
	return values, nil
}

func (e *Evaluator) sample(ctx context.Context, m model.Model, kind Kind, theta []float64, data dataset.Dataset, mode string) ([]float64, error) {
	if !kind.Valid() {
		return nil, &UnsupportedStatisticError{Name: kind.String()}
	}
	if m == nil {
		return nil, errors.NotValidf("nil model")
	}
	if isNilDataset(data) {
		return nil, dataset.ShapeMismatchf("%v needs data, got %T(nil)", kind, data)
	}
	log.Logger().Debug("evaluate statistic",
		zap.Stringer("statistic", kind),
		zap.String("mode", mode),
		zap.String("model", m.Name()),
		zap.Int("observations", data.Count()),
		zap.Int("jobs", e.config.Jobs))
	EvaluationsTotal.WithLabelValues(kind.String(), mode).Inc()
	start := time.Now()
	values, err := catalog[kind](ctx, e.config, m, theta, data)
	if err != nil {
		EvaluationErrorsTotal.WithLabelValues(kind.String(), mode).Inc()
		return nil, errors.Annotatef(err, "evaluate %v", kind)
	}
	EvaluationSeconds.WithLabelValues(kind.String(), mode).Observe(time.Since(start).Seconds())
	return values, nil
}

func isNilDataset(data dataset.Dataset) bool {
	switch d := data.(type) {
	case nil:
		return true
	case *dataset.Tabular:
		return d == nil
	case *dataset.Episodic:
		return d == nil
	default:
		return false
	}
}

func isNonFinite(value float64) bool {
	return math.IsNaN(value) || math.IsInf(value, 0)
}

var defaultEvaluator = NewEvaluator(nil)

// Evaluate returns the scalar form of the named statistic with one job.
func Evaluate(m model.Model, name string, theta []float64, data dataset.Dataset) (float64, error) {
	return defaultEvaluator.Evaluate(context.Background(), m, name, theta, data)
}

// Sample returns the vector form of the named statistic with one job.
func Sample(m model.Model, name string, theta []float64, data dataset.Dataset) ([]float64, error) {
	return defaultEvaluator.Sample(context.Background(), m, name, theta, data)
}
