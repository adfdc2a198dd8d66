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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelStatistic = "statistic"
	LabelMode      = "mode"

	modeScalar = "scalar"
	modeVector = "vector"
)

var (
	EvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seldonian",
		Subsystem: "statistic",
		Name:      "evaluations_total",
	}, []string{LabelStatistic, LabelMode})
	EvaluationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seldonian",
		Subsystem: "statistic",
		Name:      "evaluation_errors_total",
	}, []string{LabelStatistic, LabelMode})
	NonFiniteResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seldonian",
		Subsystem: "statistic",
		Name:      "non_finite_results_total",
	}, []string{LabelStatistic, LabelMode})
	EvaluationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "seldonian",
		Subsystem: "statistic",
		Name:      "evaluation_seconds",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{LabelStatistic, LabelMode})
)
