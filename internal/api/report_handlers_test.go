package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/weakspot/internal/analysis"
	"github.com/vytor/weakspot/internal/logger"
	"github.com/vytor/weakspot/internal/models"
	"github.com/vytor/weakspot/internal/repository/sqlite"
	"github.com/vytor/weakspot/internal/services"
	"github.com/vytor/weakspot/internal/testutil"
	"github.com/vytor/weakspot/internal/testutil/mocks"
	"github.com/vytor/weakspot/internal/worker"
)

const twoGames = `[White "alice"]
[Black "bob"]
[Result "0-1"]
[ECO "B01"]

1. e4 d5 2. Qg4 Nf6 0-1

[White "bob"]
[Black "alice"]
[Result "1/2-1/2"]

1. e4 e5 2. Nf3 d6 3. d4 1/2-1/2
`

func TestMain(m *testing.M) {
	logger.SetDefault(logger.Discard())
	os.Exit(m.Run())
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T, queue worker.Submitter) http.Handler {
	t.Helper()
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })

	profiles := services.NewProfileService(analysis.NewAnalyzer(analysis.Options{}), services.ProfileConfig{
		MaxGames: 30, TopWeaknesses: 3, TopOpenings: 10,
	})
	srv := &Server{
		ReportService: services.NewReportService(sqlite.NewReportRepository(db), profiles, queue),
		DB:            stubPinger{},
	}
	return srv.Routes()
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func createBody(t *testing.T, player, pgnText string) string {
	t.Helper()
	b, err := json.Marshal(services.CreateReportRequest{Player: player, PGN: pgnText})
	require.NoError(t, err)
	return string(b)
}

func TestCreateReport_SyncJSON(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/reports?sync=1", "application/json", createBody(t, "alice", twoGames))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	view := decode[services.ReportView](t, rec)
	assert.Equal(t, models.ReportCompleted, view.Status)
	require.NotNil(t, view.Profile)
	assert.Equal(t, 2, view.Profile.GamesAnalyzed)
	assert.Equal(t, 1, view.Profile.TotalMistakes)
	assert.Len(t, view.Games, 2)

	got := do(t, h, http.MethodGet, "/api/reports/"+view.PublicID, "", "")
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, view.PublicID, decode[services.ReportView](t, got).PublicID)
}

func TestCreateReport_RawPGN(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/reports?sync=true&player=alice&max_games=1", "application/x-chess-pgn", twoGames)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	view := decode[services.ReportView](t, rec)
	assert.Equal(t, "alice", view.Player)
	assert.Equal(t, 1, view.Profile.GamesAnalyzed)
}

func TestCreateReport_Queued(t *testing.T) {
	queue := new(mocks.MockSubmitter)
	queue.On("Submit", mock.AnythingOfType("*worker.BuildReportJob")).Return(nil)
	h := newTestServer(t, queue)

	rec := do(t, h, http.MethodPost, "/api/reports", "application/json", createBody(t, "alice", twoGames))
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	resp := decode[createReportResponse](t, rec)
	assert.Equal(t, models.ReportPending, resp.Status)
	assert.Equal(t, "/api/reports/"+resp.ID, rec.Header().Get("Location"))

	got := decode[services.ReportView](t, do(t, h, http.MethodGet, "/api/reports/"+resp.ID, "", ""))
	assert.Equal(t, models.ReportPending, got.Status)
	assert.Nil(t, got.Profile)
	queue.AssertExpectations(t)
}

func TestCreateReport_Errors(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"bad json", "/api/reports", "application/json", "{", http.StatusBadRequest, "BAD_REQUEST"},
		{"empty pgn", "/api/reports", "application/json", `{"player":"alice","pgn":""}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad max games", "/api/reports?max_games=x", "text/plain", twoGames, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad sync", "/api/reports?sync=maybe", "text/plain", twoGames, http.StatusBadRequest, "BAD_REQUEST"},
		{"no games", "/api/reports?sync=1", "text/plain", "\n\n", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.target, tt.contentType, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decode[errorBody](t, rec).Error.Code)
		})
	}
}

func TestCreateReport_QueueFull(t *testing.T) {
	h := newTestServer(t, worker.NewPool("reports", 1, 1))

	// The pool is never started, so the second submission finds it full.
	first := do(t, h, http.MethodPost, "/api/reports", "application/json", createBody(t, "alice", twoGames))
	require.Equal(t, http.StatusAccepted, first.Code)

	second := do(t, h, http.MethodPost, "/api/reports", "application/json", createBody(t, "alice", twoGames))
	assert.Equal(t, http.StatusServiceUnavailable, second.Code)
	assert.Equal(t, "QUEUE_FULL", decode[errorBody](t, second).Error.Code)
}

func TestListAndDeleteReports(t *testing.T) {
	h := newTestServer(t, nil)

	for _, player := range []string{"alice", "bob", "alice"} {
		rec := do(t, h, http.MethodPost, "/api/reports?sync=1", "application/json", createBody(t, player, twoGames))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	list := decode[listReportsResponse](t, do(t, h, http.MethodGet, "/api/reports?player=alice&status=completed", "", ""))
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Reports, 2)
	assert.Equal(t, 50, list.Limit)

	paged := decode[listReportsResponse](t, do(t, h, http.MethodGet, "/api/reports?limit=1&offset=1", "", ""))
	assert.Equal(t, 3, paged.Total)
	assert.Len(t, paged.Reports, 1)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/reports?limit=0", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/reports?offset=-1", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/reports?status=archived", "", "").Code)

	id := list.Reports[0].PublicID
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/reports/"+id, "", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/reports/"+id, "", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/reports/"+id, "", "").Code)
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, nil)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readyz", "", "").Code)

	down := (&Server{DB: stubPinger{err: errors.New("closed")}}).Routes()
	assert.Equal(t, http.StatusServiceUnavailable, do(t, down, http.MethodGet, "/readyz", "", "").Code)
}

func TestUnknownRoute(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, rec).Error.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode[errorBody](t, rec).Error.Code)
}
