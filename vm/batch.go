package vm

import (
	"context"
	"fmt"
	"sync"

	"github.com/john-parker1/libauth/threads"
)

// EvaluateBatch validates many programs concurrently, worker Threads each draining a shared
// channel of indices. Results are returned in the same order as programs; a worker failure
// (panic recovery aside, there is none expected here) never aborts siblings.
func EvaluateBatch(ctx context.Context, programs []Program, set InstructionSet, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(programs) {
		workers = len(programs)
	}

	results := make([]Result, len(programs))
	indexes := make(chan int, len(programs))
	for i := range programs {
		indexes <- i
	}
	close(indexes)

	wait := &sync.WaitGroup{}
	pool := make(threads.Threads, 0, workers)
	for w := 0; w < workers; w++ {
		thread := threads.NewThreadWithoutStop(fmt.Sprintf("vm-evaluate-%d", w),
			func(ctx context.Context) error {
				for i := range indexes {
					results[i] = Evaluate(programs[i], set)
				}
				return nil
			})
		thread.SetWait(wait)
		pool = append(pool, thread)
	}

	pool.Start(ctx)
	wait.Wait()

	return results, threads.CombineErrors(pool.Errors()...)
}
