// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the state that sits beside the board while a user
// searches: the search text, the selected backend, and the last dispatch
// error. It is where dispatch errors are turned into a displayed string
// and where successful results become new groups.
package session

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/tileboard/internal/board"
	"github.com/pdiddy/tileboard/internal/dispatch"
	"github.com/pdiddy/tileboard/pkg/types"
)

// Recorder journals completed dispatches. *history.Journal implements it.
type Recorder interface {
	Record(ctx context.Context, question string, backend types.Backend, content string, err error) error
}

// Request is one submitted question bound to the backend selected at
// submission time.
type Request struct {
	Question string
	Backend  types.Backend
}

// Session couples a board with a dispatcher. Like the board it wraps, it is
// used from a single goroutine; only Dispatch calls run elsewhere.
type Session struct {
	store    *board.Store
	querier  dispatch.Querier
	cfg      types.DispatchConfig
	recorder Recorder
	logger   *zap.Logger

	search      string
	serverError string
	backend     types.BackendKind
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder journals every completed dispatch.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithBackend selects the initial backend (default document).
func WithBackend(kind types.BackendKind) Option {
	return func(s *Session) { s.backend = kind }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l.Named("session") }
}

// New returns a session over store that dispatches through q using the
// endpoints in cfg.
func New(store *board.Store, q dispatch.Querier, cfg types.DispatchConfig, opts ...Option) *Session {
	s := &Session{
		store:   store,
		querier: q,
		cfg:     cfg,
		backend: types.BackendDocument,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the board the session adds groups to.
func (s *Session) Store() *board.Store { return s.store }

// Search returns the current search text.
func (s *Session) Search() string { return s.search }

// SetSearch replaces the search text.
func (s *Session) SetSearch(text string) { s.search = text }

// ServerError returns the message from the last failed dispatch, or "" if
// the most recent completion succeeded.
func (s *Session) ServerError() string { return s.serverError }

// BackendKind returns the selected backend kind.
func (s *Session) BackendKind() types.BackendKind { return s.backend }

// SetBackend selects kind for later submissions.
func (s *Session) SetBackend(kind types.BackendKind) { s.backend = kind }

// ToggleBackend switches between the two backends and returns the new one.
func (s *Session) ToggleBackend() types.BackendKind {
	s.backend = s.backend.Toggle()
	return s.backend
}

// Backend resolves the selected kind to its endpoint.
func (s *Session) Backend() types.Backend { return s.cfg.Backend(s.backend) }

// Pending captures the current search text, as typed, and the selected
// backend as a Request. It reports false when the search text is blank.
func (s *Session) Pending() (Request, bool) {
	if strings.TrimSpace(s.search) == "" {
		return Request{}, false
	}
	return Request{Question: s.search, Backend: s.Backend()}, true
}

// Dispatch runs req through the querier. It does not touch session state
// and may be called from any goroutine.
func (s *Session) Dispatch(ctx context.Context, req Request) (string, error) {
	return s.querier.Dispatch(ctx, req.Question, req.Backend)
}

// Submit dispatches the current search text and applies the result. It
// reports false when there was nothing to submit.
func (s *Session) Submit(ctx context.Context) (types.Group, bool, error) {
	req, ok := s.Pending()
	if !ok {
		return types.Group{}, false, nil
	}
	content, err := s.Dispatch(ctx, req)
	g, err := s.Apply(ctx, req, content, err)
	return g, true, err
}

// Apply records the outcome of a completed dispatch. On error it sets the
// displayed error message and creates nothing. On success it adds a new
// group holding one tile, clears the error, and clears the search text.
//
// Completions are applied whenever they arrive, including after the user
// has moved on; each successful one becomes its own new group.
func (s *Session) Apply(ctx context.Context, req Request, content string, err error) (types.Group, error) {
	if s.recorder != nil {
		if rerr := s.recorder.Record(ctx, req.Question, req.Backend, content, err); rerr != nil {
			s.logger.Warn("journal write failed", zap.Error(rerr))
		}
	}

	if err != nil {
		s.serverError = dispatch.UserMessage(err)
		s.logger.Info("dispatch failed",
			zap.String("backend", string(req.Backend.Kind)),
			zap.String("message", s.serverError))
		return types.Group{}, err
	}

	g := s.store.AddGroup(s.store.NewTile(req.Question, content))
	s.serverError = ""
	s.search = ""
	return g, nil
}
