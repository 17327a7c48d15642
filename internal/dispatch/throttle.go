// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/pdiddy/tileboard/pkg/types"
)

type throttled struct {
	q       Querier
	limiter *rate.Limiter
}

// Throttle wraps q so that dispatches start at most perSecond times a
// second, allowing bursts of burst. A non-positive perSecond returns q
// unchanged.
func Throttle(q Querier, perSecond float64, burst int) Querier {
	if perSecond <= 0 {
		return q
	}
	return &throttled{q: q, limiter: rate.NewLimiter(rate.Limit(perSecond), max(1, burst))}
}

// Dispatch waits for the limiter, then delegates. A wait cut short by ctx
// is a transport error, like any other request that never completed.
func (t *throttled) Dispatch(ctx context.Context, question string, backend types.Backend) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", transportError(fmt.Errorf("rate limit wait: %w", err))
	}
	return t.q.Dispatch(ctx, question, backend)
}
