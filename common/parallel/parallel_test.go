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

package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestParallel(t *testing.T) {
	a := lo.Range(10000)
	b := make([]int, len(a))
	workerIds := make([]int, len(a))
	// multiple threads
	err := Parallel(context.Background(), len(a), 4, func(workerId, jobId int) error {
		b[jobId] = a[jobId]
		workerIds[jobId] = workerId
		time.Sleep(time.Microsecond)
		return nil
	})
	assert.NoError(t, err)
	workersSet := mapset.NewSet(workerIds...)
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, 4, workersSet.Cardinality())
	// single thread
	err = Parallel(context.Background(), len(a), 1, func(workerId, jobId int) error {
		b[jobId] = a[jobId]
		workerIds[jobId] = workerId
		return nil
	})
	assert.NoError(t, err)
	workersSet = mapset.NewSet(workerIds...)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, workersSet.Cardinality())
}

func TestParallelFail(t *testing.T) {
	// multiple threads
	err := Parallel(context.Background(), 10000, 4, func(workerId, jobId int) error {
		if jobId%2 == 1 {
			return fmt.Errorf("error from %d", jobId)
		}
		return nil
	})
	assert.Error(t, err)
	// single thread
	err = Parallel(context.Background(), 10000, 1, func(workerId, jobId int) error {
		if jobId%2 == 1 {
			return fmt.Errorf("error from %d", jobId)
		}
		return nil
	})
	assert.EqualError(t, err, "error from 1")
}

func TestParallelCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var count atomic.Int32
	err := Parallel(ctx, 100, 4, func(_, jobId int) error {
		if jobId == 0 {
			cancel()
		}
		count.Add(1)
		time.Sleep(10 * time.Millisecond)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, int(count.Load()), 100)
}

func TestMap(t *testing.T) {
	a := lo.Range(1000)
	for _, nWorkers := range []int{1, 4} {
		b, err := Map(context.Background(), a, nWorkers, func(i, v int) (float64, error) {
			return float64(i * v), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, lo.Map(a, func(v, i int) float64 { return float64(i * v) }), b)
	}
	_, err := Map(context.Background(), a, 4, func(i, v int) (float64, error) {
		if v == 500 {
			return 0, fmt.Errorf("bad element")
		}
		return 0, nil
	})
	assert.Error(t, err)
}

func TestParallelFailStopsProducer(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 10; i++ {
		err := Parallel(context.Background(), 5000, 2, func(_, jobId int) error {
			return fmt.Errorf("error from %d", jobId)
		})
		assert.Error(t, err)
	}
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond)
}
