// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch sends a question to one of the two query services and
// normalizes the answer into tile content. It never touches the board:
// callers wrap the content in a tile and add it themselves.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/tileboard/internal/httputil"
	"github.com/pdiddy/tileboard/pkg/types"
)

// DefaultTimeout bounds a dispatch when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Querier is anything that can answer a question through a backend.
// *Dispatcher implements it; tests substitute fakes.
type Querier interface {
	Dispatch(ctx context.Context, question string, backend types.Backend) (string, error)
}

// Dispatcher posts questions to a backend endpoint.
type Dispatcher struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the default client (tests pass httptest clients).
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.client = c }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = l.Named("dispatch") }
}

// NewDispatcher returns a Dispatcher using cfg's timeout and User-Agent.
func NewDispatcher(cfg types.HTTPConfig, opts ...Option) *Dispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d := &Dispatcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.UserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type queryRequest struct {
	Question string `json:"question"`
}

// Dispatch posts question to backend.Endpoint and returns the normalized
// content. Failures are *DispatchError values matching ErrTransport or
// ErrEmptyResult; their Error() is the message to show the user.
func (d *Dispatcher) Dispatch(ctx context.Context, question string, backend types.Backend) (string, error) {
	log := d.logger.With(
		zap.String("backend", string(backend.Kind)),
		zap.String("endpoint", backend.Endpoint))

	if backend.Endpoint == "" {
		err := transportError(errors.New("no endpoint configured"))
		log.Warn("dispatch failed", zap.Error(err))
		return "", err
	}

	start := time.Now()
	body, err := httputil.PostJSON(ctx, d.client, backend.Endpoint, d.userAgent, queryRequest{Question: question})
	var statusErr *httputil.StatusError
	if errors.As(err, &statusErr) && json.Valid(statusErr.Body) {
		// A JSON error body is judged like any other response.
		log.Info("dispatch returned error status with JSON body",
			zap.Int("status", statusErr.StatusCode))
		body, err = statusErr.Body, nil
	}
	if err != nil {
		log.Warn("dispatch transport failure",
			zap.Duration("elapsed", time.Since(start)),
			zap.NamedError("cause", err))
		return "", transportError(err)
	}

	content, err := Normalize(backend.Kind, body)
	if err != nil {
		var de *DispatchError
		if errors.As(err, &de) {
			log.Warn("dispatch returned unusable response",
				zap.Duration("elapsed", time.Since(start)),
				zap.NamedError("cause", de.Cause))
		}
		return "", err
	}

	log.Debug("dispatch complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("content_bytes", len(content)))
	return content, nil
}
