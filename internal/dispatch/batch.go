// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/tileboard/pkg/types"
)

// DefaultConcurrency is the number of in-flight dispatches RunBatch allows
// when the caller passes a non-positive limit.
const DefaultConcurrency = 4

// Completion is the outcome of one question in a batch.
type Completion struct {
	// Index is the question's position in the input.
	Index    int
	Question string
	Content  string
	Err      error
}

// RunBatch dispatches every question to backend with at most concurrency
// requests in flight. fn is called once per question, on the caller's
// goroutine, in completion order rather than submission order, so it may
// mutate single-goroutine state such as a board.Store.
//
// Dispatch failures are reported through Completion.Err; RunBatch itself
// only returns the context's error.
func RunBatch(ctx context.Context, q Querier, backend types.Backend, questions []string, concurrency int, fn func(Completion)) error {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make(chan Completion)
	go func() {
		var g errgroup.Group
		g.SetLimit(concurrency)
		for i, question := range questions {
			g.Go(func() error {
				content, err := q.Dispatch(ctx, question, backend)
				results <- Completion{Index: i, Question: question, Content: content, Err: err}
				return nil
			})
		}
		g.Wait()
		close(results)
	}()

	for c := range results {
		fn(c)
	}
	return ctx.Err()
}
