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
	"sync"

	"github.com/juju/errors"
)

const chanSize = 1024

/* Parallel Schedulers */

// Parallel schedules and runs tasks in parallel. nJobs is the number of tasks. nWorkers is
// the number of executors. worker is the executed function which passed a worker id and a
// job id. The ctx argument allows callers to cancel outstanding work.
func Parallel(ctx context.Context, nJobs, nWorkers int, worker func(workerId, jobId int) error) error {
	if nWorkers <= 1 {
		for i := 0; i < nJobs; i++ {
			if err := ctx.Err(); err != nil {
				return errors.Trace(err)
			}
			if err := worker(0, i); err != nil {
				return errors.Trace(err)
			}
		}
		return nil
	}
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c := make(chan int, chanSize)
	// producer
	go func() {
		defer close(c)
		for i := 0; i < nJobs; i++ {
			select {
			case <-ctx.Done():
				return
			case c <- i:
			}
		}
	}()
	// consumer
	var wg sync.WaitGroup
	errs := make([]error, nJobs)
	for j := 0; j < nWorkers; j++ {
		workerId := j
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case jobId, ok := <-c:
					if !ok {
						return
					}
					if err := worker(workerId, jobId); err != nil {
						errs[jobId] = err
						// stop the producer and the other workers
						cancel()
						return
					}
				}
			}
		})
	}
	wg.Wait()
	if err := parent.Err(); err != nil {
		return errors.Trace(err)
	}
	// the first error in job order wins
	for _, err := range errs {
		if err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// Map applies fn to every element of a with nWorkers workers. The i-th result is fn(i, a[i]),
// whatever order the workers finish in.
func Map[T, R any](ctx context.Context, a []T, nWorkers int, fn func(int, T) (R, error)) ([]R, error) {
	results := make([]R, len(a))
	err := Parallel(ctx, len(a), nWorkers, func(_, jobId int) error {
		r, err := fn(jobId, a[jobId])
		if err != nil {
			return err
		}
		results[jobId] = r
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return results, nil
}
