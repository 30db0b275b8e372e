package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetbook/internal/core"
	"budgetbook/internal/kv"
	"budgetbook/internal/ledger"
)

// testNow pins the clock to March 2024 so summaries and trends are stable.
var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	book := ledger.Open(context.Background(), kv.NewMemory())
	srv := NewServer(":0", book, core.DefaultVocabulary())
	srv.now = func() time.Time { return testNow }
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func do(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func createEntry(t *testing.T, srv *Server, body string) entryResponse {
	t.Helper()
	rr := do(srv, http.MethodPost, "/api/entries", body)
	require.Equal(t, http.StatusCreated, rr.Code, "create failed: %s", rr.Body.String())
	var e entryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	return e
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t)

	rr := do(srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "budgetbook")
	assert.Contains(t, rr.Body.String(), `value="2024-03"`, "month selector defaults to the current month")
	assert.Contains(t, rr.Body.String(), "Salary")
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusOK, do(srv, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(srv, http.MethodGet, "/readyz", "").Code)
	assert.Equal(t, http.StatusNotFound, do(srv, http.MethodGet, "/nope", "").Code)
}

func TestStaticAssets(t *testing.T) {
	srv := newTestServer(t)
	rr := do(srv, http.MethodGet, "/static/app.js", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Cache-Control"), "max-age=3600")
}

func TestCreateEntry(t *testing.T) {
	srv := newTestServer(t)

	e := createEntry(t, srv, `{"type":"expense","amount":"12,5","category":"Food","description":"lunch","date":"2024-03-10"}`)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "12.50", e.Amount, "amount normalized to two decimals")
	assert.Equal(t, "expense", e.Type)
	assert.Equal(t, "2024-03-10", e.Date)
}

func TestCreateEntryInvalid(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"missing amount", `{"type":"expense","category":"Food","date":"2024-03-10"}`, http.StatusUnprocessableEntity},
		{"missing category", `{"type":"expense","amount":"5","date":"2024-03-10"}`, http.StatusUnprocessableEntity},
		{"bad type", `{"type":"loan","amount":"5","category":"Food","date":"2024-03-10"}`, http.StatusUnprocessableEntity},
		{"bad date", `{"type":"expense","amount":"5","category":"Food","date":"10/03/2024"}`, http.StatusUnprocessableEntity},
		{"negative amount", `{"type":"expense","amount":"-5","category":"Food","date":"2024-03-10"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(srv, http.MethodPost, "/api/entries", tc.body)
			assert.Equal(t, tc.code, rr.Code, rr.Body.String())
		})
	}

	// nothing was created
	rr := do(srv, http.MethodGet, "/api/entries", "")
	var entries []entryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	assert.Empty(t, entries)
}

func TestListEntriesMonthFilter(t *testing.T) {
	srv := newTestServer(t)
	createEntry(t, srv, `{"type":"income","amount":"1000","category":"Salary","date":"2024-01-05"}`)
	createEntry(t, srv, `{"type":"expense","amount":"200","category":"Food","date":"2024-01-10"}`)
	createEntry(t, srv, `{"type":"expense","amount":"50","category":"Food","date":"2024-02-01"}`)

	rr := do(srv, http.MethodGet, "/api/entries?month=2024-01", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var entries []entryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-01-05", entries[0].Date, "insertion order preserved")

	rr = do(srv, http.MethodGet, "/api/entries?month=2024-13", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateEntry(t *testing.T) {
	srv := newTestServer(t)
	e := createEntry(t, srv, `{"type":"expense","amount":"10","category":"Food","date":"2024-03-01"}`)

	rr := do(srv, http.MethodPut, "/api/entries/"+e.ID, `{"type":"expense","amount":"15","category":"Bills","date":"2024-03-02"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated entryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, e.ID, updated.ID, "id preserved across update")
	assert.Equal(t, "15.00", updated.Amount)
	assert.Equal(t, "Bills", updated.Category)

	rr = do(srv, http.MethodPut, "/api/entries/01HUNKNOWN", `{"type":"expense","amount":"1","category":"Food","date":"2024-03-02"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteEntry(t *testing.T) {
	srv := newTestServer(t)
	e := createEntry(t, srv, `{"type":"expense","amount":"10","category":"Food","date":"2024-03-01"}`)

	assert.Equal(t, http.StatusNoContent, do(srv, http.MethodDelete, "/api/entries/"+e.ID, "").Code)
	// deleting a nonexistent id is still a no-op success
	assert.Equal(t, http.StatusNoContent, do(srv, http.MethodDelete, "/api/entries/"+e.ID, "").Code)

	rr := do(srv, http.MethodGet, "/api/entries", "")
	var entries []entryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	assert.Empty(t, entries)
}

func TestSummaryScenario(t *testing.T) {
	srv := newTestServer(t)
	createEntry(t, srv, `{"type":"income","amount":"1000.00","category":"Salary","date":"2024-01-05"}`)
	createEntry(t, srv, `{"type":"expense","amount":"200.00","category":"Food","date":"2024-01-10"}`)
	createEntry(t, srv, `{"type":"expense","amount":"50.00","category":"Food","date":"2024-02-01"}`)

	rr := do(srv, http.MethodGet, "/api/summary?month=2024-01", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var s summaryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))

	assert.Equal(t, "2024-01", s.Month)
	assert.Equal(t, "1000.00", s.Totals.Income)
	assert.Equal(t, "250.00", s.Totals.Expenses)
	assert.Equal(t, "750.00", s.Totals.Balance)
	assert.Equal(t, "1000.00", s.Monthly.Income)
	assert.Equal(t, "200.00", s.Monthly.Expenses)
	assert.Equal(t, map[string]string{"Food": "200.00"}, s.Breakdown)
}

func TestSummaryDefaultsToCurrentMonth(t *testing.T) {
	srv := newTestServer(t)
	rr := do(srv, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var s summaryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	assert.Equal(t, "2024-03", s.Month)
	assert.Equal(t, "0.00", s.Totals.Income)
	assert.Empty(t, s.Breakdown)
}

func TestTrendAnchorsOnServerClock(t *testing.T) {
	srv := newTestServer(t)
	createEntry(t, srv, `{"type":"income","amount":"1000","category":"Salary","date":"2023-10-02"}`)
	createEntry(t, srv, `{"type":"expense","amount":"40","category":"Food","date":"2024-03-01"}`)

	rr := do(srv, http.MethodGet, "/api/trend", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var tr trendResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tr))

	require.Len(t, tr.Labels, 6)
	assert.Equal(t, "Oct 2023", tr.Labels[0])
	assert.Equal(t, "Mar 2024", tr.Labels[5])
	assert.Equal(t, 1000.0, tr.Income[0])
	assert.Equal(t, 40.0, tr.Expenses[5])
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, http.StatusMethodNotAllowed, do(srv, http.MethodDelete, "/api/entries", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(srv, http.MethodPost, "/api/summary", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(srv, http.MethodPost, "/api/trend", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(srv, http.MethodGet, "/api/entries/some-id", "").Code)
}
