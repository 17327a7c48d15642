// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tileboard/pkg/types"
)

type echoQuerier struct{ calls int }

func (e *echoQuerier) Dispatch(_ context.Context, question string, _ types.Backend) (string, error) {
	e.calls++
	return "echo " + question, nil
}

func TestThrottleDisabledReturnsQuerier(t *testing.T) {
	q := &echoQuerier{}
	assert.Same(t, q, Throttle(q, 0, 1))
}

func TestThrottleDelegates(t *testing.T) {
	q := &echoQuerier{}
	tq := Throttle(q, 1000, 3)

	for i := 0; i < 5; i++ {
		content, err := tq.Dispatch(context.Background(), "hi", types.Backend{})
		require.NoError(t, err)
		assert.Equal(t, "echo hi", content)
	}
	assert.Equal(t, 5, q.calls)
}

func TestThrottleCancelledWaitIsTransportError(t *testing.T) {
	q := &echoQuerier{}
	tq := Throttle(q, 0.001, 1)

	// The first call spends the only token.
	_, err := tq.Dispatch(context.Background(), "a", types.Backend{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tq.Dispatch(ctx, "b", types.Backend{})
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, q.calls)
}
