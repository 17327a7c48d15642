// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/tileboard/internal/board"
	"github.com/pdiddy/tileboard/internal/dispatch"
	"github.com/pdiddy/tileboard/internal/history"
	"github.com/pdiddy/tileboard/pkg/types"
)

// --- test helpers ---

var testEndpoints = types.DispatchConfig{
	DocumentEndpoint:   "http://document.test/query",
	DatasourceEndpoint: "http://datasource.test/query",
}

// fakeQuerier returns canned results and records what it was asked.
type fakeQuerier struct {
	content string
	err     error
	asked   []Request
}

func (f *fakeQuerier) Dispatch(_ context.Context, question string, backend types.Backend) (string, error) {
	f.asked = append(f.asked, Request{Question: question, Backend: backend})
	return f.content, f.err
}

type failingRecorder struct{ calls int }

func (r *failingRecorder) Record(context.Context, string, types.Backend, string, error) error {
	r.calls++
	return errors.New("disk full")
}

func newTestSession(t *testing.T, q dispatch.Querier, opts ...Option) *Session {
	t.Helper()
	store := board.NewStore(board.WithIDGenerator(&board.SequenceGenerator{Prefix: "id"}))
	return New(store, q, testEndpoints, append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
}

func transportErr() error {
	_, err := dispatch.Normalize(types.BackendDocument, []byte("<html>"))
	return err
}

func emptyErr() error {
	_, err := dispatch.Normalize(types.BackendDocument, []byte("{}"))
	return err
}

// --- Submit ---

func TestSubmitSuccessAddsGroupAndClearsState(t *testing.T) {
	q := &fakeQuerier{content: "X"}
	s := newTestSession(t, q)
	s.SetSearch("what is X?")

	g, submitted, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, submitted)

	assert.Equal(t, types.DefaultGroupName, g.Name)
	require.Len(t, g.Tiles, 1)
	assert.Equal(t, "what is X?", g.Tiles[0].Question)
	assert.Equal(t, "X", g.Tiles[0].Content)
	assert.Empty(t, s.Search(), "search text cleared on success")
	assert.Empty(t, s.ServerError())
	assert.Equal(t, 1, s.Store().Len())

	require.Len(t, q.asked, 1)
	assert.Equal(t, types.Backend{Kind: types.BackendDocument, Endpoint: testEndpoints.DocumentEndpoint}, q.asked[0].Backend)
}

func TestSubmitTransportFailureCreatesNoTile(t *testing.T) {
	q := &fakeQuerier{err: transportErr()}
	s := newTestSession(t, q)
	s.SetSearch("anything")

	_, submitted, err := s.Submit(context.Background())
	require.True(t, submitted)
	assert.ErrorIs(t, err, dispatch.ErrTransport)
	assert.Equal(t, "Server error. Please try again.", s.ServerError())
	assert.Equal(t, 0, s.Store().Len())
	assert.Equal(t, "anything", s.Search(), "search text kept on failure")
}

func TestSubmitEmptyResultCreatesNoTile(t *testing.T) {
	s := newTestSession(t, &fakeQuerier{err: emptyErr()})
	s.SetSearch("anything")

	_, _, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, dispatch.ErrEmptyResult)
	assert.Equal(t, "Error fetching data", s.ServerError())
	assert.Equal(t, 0, s.Store().Len())
}

func TestErrorClearedByNextSuccess(t *testing.T) {
	q := &fakeQuerier{err: transportErr()}
	s := newTestSession(t, q)

	s.SetSearch("first")
	_, _, _ = s.Submit(context.Background())
	require.NotEmpty(t, s.ServerError())

	q.err, q.content = nil, "Y"
	s.SetSearch("second")
	_, _, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, s.ServerError())
}

func TestSubmitBlankSearchIsSkipped(t *testing.T) {
	q := &fakeQuerier{content: "X"}
	s := newTestSession(t, q)
	s.SetSearch("   ")

	_, submitted, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, submitted)
	assert.Empty(t, q.asked)
}

func TestSubmitKeepsQuestionAsTyped(t *testing.T) {
	q := &fakeQuerier{content: "X"}
	s := newTestSession(t, q)
	s.SetSearch("  padded  ")

	g, _, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "  padded  ", g.Tiles[0].Question)
	assert.Equal(t, "  padded  ", q.asked[0].Question)
}

// --- backend selection ---

func TestBackendSelectionIsPassedPerCall(t *testing.T) {
	q := &fakeQuerier{content: "X"}
	s := newTestSession(t, q, WithBackend(types.BackendDatasource))
	assert.Equal(t, types.BackendDatasource, s.BackendKind())

	s.SetSearch("a")
	_, _, _ = s.Submit(context.Background())
	assert.Equal(t, types.BackendDocument, s.ToggleBackend())
	s.SetSearch("b")
	_, _, _ = s.Submit(context.Background())

	require.Len(t, q.asked, 2)
	assert.Equal(t, testEndpoints.DatasourceEndpoint, q.asked[0].Backend.Endpoint)
	assert.Equal(t, testEndpoints.DocumentEndpoint, q.asked[1].Backend.Endpoint)
}

// --- out-of-order and stale completions ---

func TestOutOfOrderCompletionsPrependInArrivalOrder(t *testing.T) {
	s := newTestSession(t, &fakeQuerier{})

	s.SetSearch("first")
	first, ok := s.Pending()
	require.True(t, ok)
	s.SetSearch("second")
	second, ok := s.Pending()
	require.True(t, ok)

	// The second request resolves before the first.
	_, err := s.Apply(context.Background(), second, "B", nil)
	require.NoError(t, err)
	_, err = s.Apply(context.Background(), first, "A", nil)
	require.NoError(t, err)

	groups := s.Store().Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "first", groups[0].Tiles[0].Question, "last to resolve is displayed first")
	assert.Equal(t, "second", groups[1].Tiles[0].Question)
}

func TestStaleCompletionStillAddsGroup(t *testing.T) {
	// Accepted race: a result that arrives after the user has moved on is
	// still added as a new group, and it clears whatever was typed since.
	s := newTestSession(t, &fakeQuerier{})
	s.SetSearch("old question")
	req, _ := s.Pending()

	s.SetSearch("new question in progress")
	_, err := s.Apply(context.Background(), req, "late answer", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Store().Len())
	assert.Empty(t, s.Search())
}

// --- journaling ---

func TestApplyJournalsEveryCompletion(t *testing.T) {
	j, err := history.Open(types.HistoryConfig{Path: filepath.Join(t.TempDir(), "history.db")})
	require.NoError(t, err)
	defer j.Close()

	q := &fakeQuerier{content: "X"}
	s := newTestSession(t, q, WithRecorder(j))
	s.SetSearch("ok one")
	_, _, _ = s.Submit(context.Background())
	q.err = emptyErr()
	s.SetSearch("empty one")
	_, _, _ = s.Submit(context.Background())

	entries, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, history.OutcomeEmpty, entries[0].Outcome)
	assert.Equal(t, history.OutcomeOK, entries[1].Outcome)
}

func TestJournalFailureDoesNotBlockTile(t *testing.T) {
	rec := &failingRecorder{}
	s := newTestSession(t, &fakeQuerier{content: "X"}, WithRecorder(rec))
	s.SetSearch("q")

	_, _, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, 1, s.Store().Len())
}

// --- end to end with a real dispatcher ---

func TestSubmitThroughDispatcher(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"top_matches":[{"content":"ranked"}],"answer":"flat"}`)
	}))
	defer ts.Close()

	d := dispatch.NewDispatcher(types.HTTPConfig{}, dispatch.WithHTTPClient(ts.Client()))
	store := board.NewStore()
	s := New(store, d, types.DispatchConfig{DocumentEndpoint: ts.URL, DatasourceEndpoint: ts.URL})

	s.SetSearch("q")
	g, _, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ranked", g.Tiles[0].Content)

	s.ToggleBackend()
	s.SetSearch("q")
	g, _, err = s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "flat", g.Tiles[0].Content)
}
