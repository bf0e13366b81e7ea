package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/dossier/pkg/domain"
	"github.com/umputun/dossier/pkg/scheduler"
	"github.com/umputun/dossier/server/mocks"
)

func serve(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func dossierStore() *mocks.StoreMock {
	return &mocks.StoreMock{
		GetDossierFunc: func(ctx context.Context, id int64) (*domain.Dossier, error) {
			if id == 1 {
				return &domain.Dossier{ID: 1, Name: "Tech"}, nil
			}
			return nil, fmt.Errorf("get dossier %d: %w", id, sql.ErrNoRows)
		},
	}
}

func TestServer_statusHandler(t *testing.T) {
	sched := &mocks.SchedulerMock{
		IsRunningFunc: func() bool { return true },
		InFlightFunc:  func() int { return 2 },
	}
	srv := New(testConfig(), &mocks.StoreMock{}, sched, &mocks.SummarizerMock{}, "1.2.3", false)

	w := serve(srv, "GET", "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "1.2.3", status["version"])
	assert.Equal(t, "running", status["scheduler"])
	assert.InDelta(t, 2, status["in_flight"], 0.001)
	assert.NotEmpty(t, status["time"])
}

func TestServer_listDossiersHandler(t *testing.T) {
	store := &mocks.StoreMock{
		ListActiveFunc: func(ctx context.Context) ([]domain.Dossier, error) {
			return []domain.Dossier{
				{ID: 1, Name: "Tech", Recipient: "a@example.com", Feeds: []string{"https://example.com/rss"},
					MaxItems: 20, Frequency: domain.FrequencyDaily, DeliveryTime: "08:00", Timezone: "UTC", Active: true},
				{ID: 3, Name: "Weekly", Frequency: domain.FrequencyWeekly, Active: true},
			}, nil
		},
	}
	srv := New(testConfig(), store, &mocks.SchedulerMock{}, &mocks.SummarizerMock{}, "test", false)

	w := serve(srv, "GET", "/api/v1/dossiers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res []dossierView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res, 2)
	assert.Equal(t, "Tech", res[0].Name)
	assert.Equal(t, "daily", res[0].Frequency)
	assert.Equal(t, []string{"https://example.com/rss"}, res[0].Feeds)
	assert.Equal(t, "weekly", res[1].Frequency)

	store.ListActiveFunc = func(ctx context.Context) ([]domain.Dossier, error) { return nil, errors.New("db gone") }
	w = serve(srv, "GET", "/api/v1/dossiers", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db gone")
}

func TestServer_deliveriesHandler(t *testing.T) {
	store := dossierStore()
	delivered := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	store.ListDeliveriesFunc = func(ctx context.Context, dossierID int64, limit int) ([]domain.Delivery, error) {
		return []domain.Delivery{{ID: 9, DossierID: dossierID, DeliveredAt: delivered, ItemCount: 5, Success: true,
			PeriodKey: "2024-03-10", Content: "text"}}, nil
	}
	srv := New(testConfig(), store, &mocks.SchedulerMock{}, &mocks.SummarizerMock{}, "test", false)

	tbl := []struct {
		name      string
		target    string
		code      int
		wantLimit int
	}{
		{name: "default limit", target: "/api/v1/dossiers/1/deliveries", code: http.StatusOK, wantLimit: 20},
		{name: "custom limit", target: "/api/v1/dossiers/1/deliveries?limit=5", code: http.StatusOK, wantLimit: 5},
		{name: "limit capped", target: "/api/v1/dossiers/1/deliveries?limit=1000", code: http.StatusOK, wantLimit: 100},
		{name: "bad limit", target: "/api/v1/dossiers/1/deliveries?limit=abc", code: http.StatusBadRequest},
		{name: "zero limit", target: "/api/v1/dossiers/1/deliveries?limit=0", code: http.StatusBadRequest},
		{name: "bad id", target: "/api/v1/dossiers/xyz/deliveries", code: http.StatusBadRequest},
		{name: "unknown dossier", target: "/api/v1/dossiers/42/deliveries", code: http.StatusNotFound},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			before := len(store.ListDeliveriesCalls())
			w := serve(srv, "GET", tt.target, "")
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				assert.Len(t, store.ListDeliveriesCalls(), before)
				return
			}
			calls := store.ListDeliveriesCalls()
			require.Len(t, calls, before+1)
			assert.Equal(t, tt.wantLimit, calls[len(calls)-1].Limit)

			var res []deliveryView
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			require.Len(t, res, 1)
			assert.Equal(t, int64(9), res[0].ID)
			assert.Equal(t, 5, res[0].ItemCount)
			assert.Equal(t, "2024-03-10", res[0].PeriodKey)
			assert.True(t, res[0].DeliveredAt.Equal(delivered))
		})
	}
}

func TestServer_runHandler(t *testing.T) {
	tbl := []struct {
		name   string
		target string
		runErr error
		code   int
	}{
		{name: "accepted", target: "/api/v1/dossiers/1/run", code: http.StatusAccepted},
		{name: "in flight", target: "/api/v1/dossiers/1/run", runErr: scheduler.ErrInFlight, code: http.StatusConflict},
		{name: "not found", target: "/api/v1/dossiers/42/run",
			runErr: fmt.Errorf("get dossier 42: %w", sql.ErrNoRows), code: http.StatusNotFound},
		{name: "store failure", target: "/api/v1/dossiers/1/run", runErr: errors.New("db locked"),
			code: http.StatusInternalServerError},
		{name: "bad id", target: "/api/v1/dossiers/-1/run", code: http.StatusBadRequest},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			sched := &mocks.SchedulerMock{RunNowFunc: func(ctx context.Context, id int64) error { return tt.runErr }}
			srv := New(testConfig(), &mocks.StoreMock{}, sched, &mocks.SummarizerMock{}, "test", false)
			w := serve(srv, "POST", tt.target, "")
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code == http.StatusBadRequest {
				assert.Empty(t, sched.RunNowCalls())
			}
		})
	}

	t.Run("get not allowed", func(t *testing.T) {
		sched := &mocks.SchedulerMock{}
		srv := New(testConfig(), &mocks.StoreMock{}, sched, &mocks.SummarizerMock{}, "test", false)
		w := serve(srv, "GET", "/api/v1/dossiers/1/run", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
		assert.Empty(t, sched.RunNowCalls())
	})
}

func TestServer_methodMismatch(t *testing.T) {
	srv := New(testConfig(), &mocks.StoreMock{}, &mocks.SchedulerMock{}, &mocks.SummarizerMock{}, "test", false)

	tbl := []struct {
		method string
		target string
		code   int
		allow  string
	}{
		{method: "GET", target: "/api/v1/summarize", code: http.StatusMethodNotAllowed, allow: http.MethodPost},
		{method: "POST", target: "/api/v1/status", code: http.StatusMethodNotAllowed, allow: http.MethodGet},
		{method: "DELETE", target: "/api/v1/dossiers/1/deliveries", code: http.StatusMethodNotAllowed, allow: http.MethodGet},
		{method: "GET", target: "/api/v1/unknown", code: http.StatusNotFound},
		{method: "GET", target: "/api/v1/dossiers/1/other", code: http.StatusNotFound},
	}

	for _, tt := range tbl {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := serve(srv, tt.method, tt.target, "")
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.Equal(t, tt.allow, w.Header().Get("Allow"))
		})
	}
}

func TestServer_stylesHandler(t *testing.T) {
	store := &mocks.StoreMock{ListStylesFunc: func(ctx context.Context) ([]domain.Style, error) {
		return []domain.Style{{Name: "neutral", Instructions: "be neutral", IsDefault: true}, {Name: "casual"}}, nil
	}}
	srv := New(testConfig(), store, &mocks.SchedulerMock{}, &mocks.SummarizerMock{}, "test", false)

	w := serve(srv, "GET", "/api/v1/styles", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res []styleView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res, 2)
	assert.Equal(t, styleView{Name: "neutral", Instructions: "be neutral", IsDefault: true}, res[0])
}

func TestServer_summarizeHandler(t *testing.T) {
	summ := &mocks.SummarizerMock{SummarizeFunc: func(ctx context.Context, text, style, lang string) (string, error) {
		if strings.Contains(text, "fail") {
			return "", errors.New("llm unavailable")
		}
		return "short version", nil
	}}
	srv := New(testConfig(), &mocks.StoreMock{}, &mocks.SchedulerMock{}, summ, "test", false)

	w := serve(srv, "POST", "/api/v1/summarize", `{"text":"a long article","style":"casual","language":"de"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "short version", res["summary"])
	require.Len(t, summ.SummarizeCalls(), 1)
	assert.Equal(t, "casual", summ.SummarizeCalls()[0].Style)
	assert.Equal(t, "de", summ.SummarizeCalls()[0].Lang)

	w = serve(srv, "POST", "/api/v1/summarize", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(srv, "POST", "/api/v1/summarize", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(srv, "POST", "/api/v1/summarize", `{"text":"this will fail"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "llm unavailable")
	assert.Len(t, summ.SummarizeCalls(), 2)
}
