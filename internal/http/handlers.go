package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"budgetbook/internal/core"
	"budgetbook/internal/ledger"
	"budgetbook/internal/report"
)

// entryPayload is the request body for create/update.
type entryPayload struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// entryResponse mirrors the persisted wire shape: two-decimal amount string,
// YYYY-MM-DD date.
type entryResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
}

type totalsResponse struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Balance  string `json:"balance"`
}

type summaryResponse struct {
	Month     string            `json:"month"`
	Totals    totalsResponse    `json:"totals"`
	Monthly   totalsResponse    `json:"monthly"`
	Breakdown map[string]string `json:"breakdown"`
}

type trendResponse struct {
	Labels   []string  `json:"labels"`
	Income   []float64 `json:"income"`
	Expenses []float64 `json:"expenses"`
}

func toEntryResponse(e core.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Type:        string(e.Type),
		Amount:      e.Amount.String(),
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.String(),
	}
}

func toTotalsResponse(t report.Totals) totalsResponse {
	return totalsResponse{
		Income:   t.Income.String(),
		Expenses: t.Expenses.String(),
		Balance:  t.Balance.String(),
	}
}

func (p entryPayload) toDraft() (core.Draft, error) {
	date, err := core.ParseDate(p.Date)
	if err != nil {
		return core.Draft{}, err
	}
	return core.Draft{
		Type:        core.EntryType(strings.ToLower(strings.TrimSpace(p.Type))),
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
		Date:        date,
	}, nil
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listEntries(w, r)
	case http.MethodPost:
		s.createEntry(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	entries := s.book.List()
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		month, err := core.ParseMonth(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
			return
		}
		entries = report.MonthlyEntries(entries, month)
	}

	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := payload.toDraft()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	entry, err := s.book.Add(r.Context(), draft)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

func (s *Server) handleEntryByID(w http.ResponseWriter, r *http.Request) {
	entryID := strings.TrimPrefix(r.URL.Path, "/api/entries/")
	if entryID == "" || strings.Contains(entryID, "/") {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateEntry(w, r, entryID)
	case http.MethodDelete:
		// Deleting a nonexistent id is a no-op, not an error.
		if err := s.book.Remove(r.Context(), entryID); err != nil {
			slog.ErrorContext(r.Context(), "Entry remove error", "id", entryID, "error", err)
			writeError(w, http.StatusInternalServerError, "remove failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request, entryID string) {
	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := payload.toDraft()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	entry, err := s.book.Update(r.Context(), entryID, draft)
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, "entry not found")
	case err != nil:
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeJSON(w, http.StatusOK, toEntryResponse(entry))
	}
}

// handleSummary returns all-time totals plus monthly totals and the category
// breakdown for the requested month (default: the current month).
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	month := core.MonthOf(s.now())
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		parsed, err := core.ParseMonth(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
			return
		}
		month = parsed
	}

	entries := s.book.List()
	breakdown := report.CategoryBreakdown(entries, month)
	out := summaryResponse{
		Month:     month.String(),
		Totals:    toTotalsResponse(report.ComputeTotals(entries)),
		Monthly:   toTotalsResponse(report.MonthlyTotals(entries, month)),
		Breakdown: make(map[string]string, len(breakdown)),
	}
	for category, amount := range breakdown {
		out.Breakdown[category] = amount.String()
	}
	writeJSON(w, http.StatusOK, out)
}

// handleTrend returns the six-month series. The window anchors on the
// server clock, not the month the user is viewing.
func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	trend := report.TrendSeries(s.book.List(), s.now())
	out := trendResponse{
		Labels:   trend.Labels,
		Income:   make([]float64, len(trend.Income)),
		Expenses: make([]float64, len(trend.Expenses)),
	}
	for i := range trend.Income {
		out.Income[i] = trend.Income[i].Float64()
		out.Expenses[i] = trend.Expenses[i].Float64()
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
