// Package parallel runs a set of keyed tasks concurrently and collects their
// results. Useful for fanning out independent fetches, e.g. several users'
// carts at once.
package parallel

import (
	"context"
	"sync"
)

// Task is one unit of work executed concurrently
type Task[T any] func(ctx context.Context) (T, error)

// Result holds the value and error from one task
type Result[T any] struct {
	Value T
	Error error
}

// Results maps task keys to their results
type Results[T any] map[string]Result[T]

// Run executes all tasks concurrently and blocks until every task finishes.
// Results are keyed by the task's key; a task error is recorded, never
// propagated, so one failure does not hide the others.
func Run[T any](ctx context.Context, tasks map[string]Task[T]) Results[T] {
	if len(tasks) == 0 {
		return Results[T]{}
	}

	results := make(Results[T], len(tasks))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for key, task := range tasks {
		wg.Add(1)
		go func(k string, t Task[T]) {
			defer wg.Done()
			value, err := t(ctx)

			mu.Lock()
			results[k] = Result[T]{Value: value, Error: err}
			mu.Unlock()
		}(key, task)
	}

	wg.Wait()
	return results
}
