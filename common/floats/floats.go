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

// Package floats provides dense float64 kernels used by statistics and policies.
// Every kernel panics if slice lengths do not match, like gonum/floats.
package floats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SubTo subtracts one vector by another and saves the result in dst: dst = a - b
func SubTo(a, b, dst []float64) {
	if len(a) != len(b) || len(a) != len(dst) {
		panic("floats: slice lengths do not match")
	}
	floats.SubTo(dst, a, b)
}

// DivTo divides one vector by another element-wise: dst = a / b
func DivTo(a, b, dst []float64) {
	if len(a) != len(b) || len(a) != len(dst) {
		panic("floats: slice lengths do not match")
	}
	floats.DivTo(dst, a, b)
}

// SquareTo squares a vector element-wise: dst = a * a
func SquareTo(a, dst []float64) {
	if len(a) != len(dst) {
		panic("floats: slice lengths do not match")
	}
	for i := range a {
		dst[i] = a[i] * a[i]
	}
}

// OneMinusTo saves the complement of a vector: dst = 1 - a
func OneMinusTo(a, dst []float64) {
	if len(a) != len(dst) {
		panic("floats: slice lengths do not match")
	}
	for i := range a {
		dst[i] = 1 - a[i]
	}
}

// SigmoidTo applies the logistic function element-wise: dst = 1 / (1 + exp(-a))
func SigmoidTo(a, dst []float64) {
	if len(a) != len(dst) {
		panic("floats: slice lengths do not match")
	}
	for i := range a {
		dst[i] = 1 / (1 + math.Exp(-a[i]))
	}
}

// ExpTo exponentiates a vector after subtracting c: dst = exp(a - c)
func ExpTo(a []float64, c float64, dst []float64) {
	if len(a) != len(dst) {
		panic("floats: slice lengths do not match")
	}
	for i := range a {
		dst[i] = math.Exp(a[i] - c)
	}
}

// Gather collects a[indices[0]], a[indices[1]], ... in order.
func Gather(a []float64, indices []int) []float64 {
	ret := make([]float64, len(indices))
	for i, index := range indices {
		ret[i] = a[index]
	}
	return ret
}

// Sum of a vector.
func Sum(a []float64) float64 {
	return floats.Sum(a)
}

// Prod of a vector. The product of an empty vector is 1.
func Prod(a []float64) float64 {
	return floats.Prod(a)
}

// Max of a vector. It panics if the vector is empty.
func Max(a []float64) float64 {
	return floats.Max(a)
}

// Mean of a vector. The mean of an empty vector is NaN.
func Mean(a []float64) float64 {
	return floats.Sum(a) / float64(len(a))
}
