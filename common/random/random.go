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

package random

import (
	"math/rand"
	"sync"
)

// RandomGenerator is a seeded random generator safe for concurrent use.
type RandomGenerator struct {
	mu  *sync.Mutex
	rng *rand.Rand
}

// NewRandomGenerator creates a RandomGenerator.
func NewRandomGenerator(seed int64) RandomGenerator {
	return RandomGenerator{mu: new(sync.Mutex), rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform draw in [0, 1).
func (rng RandomGenerator) Float64() float64 {
	rng.mu.Lock()
	defer rng.mu.Unlock()
	return rng.rng.Float64()
}

// NormalVector makes a vec filled with normal random floats.
func (rng RandomGenerator) NormalVector(size int, mean, stdDev float64) []float64 {
	rng.mu.Lock()
	defer rng.mu.Unlock()
	ret := make([]float64, size)
	for i := 0; i < len(ret); i++ {
		ret[i] = rng.rng.NormFloat64()*stdDev + mean
	}
	return ret
}

// UniformVector makes a vec filled with uniform random floats in [low, high).
func (rng RandomGenerator) UniformVector(size int, low, high float64) []float64 {
	rng.mu.Lock()
	defer rng.mu.Unlock()
	ret := make([]float64, size)
	scale := high - low
	for i := 0; i < len(ret); i++ {
		ret[i] = rng.rng.Float64()*scale + low
	}
	return ret
}
