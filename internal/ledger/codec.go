package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"budgetbook/internal/core"
)

// storedEntry is the persisted shape of one entry: amounts travel as
// two-decimal strings, dates as YYYY-MM-DD. There is no version field.
type storedEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
}

func encodeEntries(entries []core.Entry) ([]byte, error) {
	stored := make([]storedEntry, len(entries))
	for i, e := range entries {
		stored[i] = storedEntry{
			ID:          e.ID,
			Type:        string(e.Type),
			Amount:      e.Amount.String(),
			Category:    e.Category,
			Description: e.Description,
			Date:        e.Date.String(),
		}
	}
	return json.Marshal(stored)
}

// decodeEntries parses a persisted blob. The loader never fails: an
// undecodable blob yields an empty ledger, and individually malformed
// records (bad type, amount or date, missing or duplicate id) are skipped.
func decodeEntries(ctx context.Context, data []byte) []core.Entry {
	var stored []storedEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		slog.WarnContext(ctx, "Malformed ledger blob, starting empty", "error", err)
		return nil
	}

	var (
		entries []core.Entry
		seen    = make(map[string]struct{}, len(stored))
	)
	for i, s := range stored {
		e, err := s.toEntry()
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed ledger record", "index", i, "id", s.ID, "error", err)
			continue
		}
		if _, dup := seen[e.ID]; dup {
			slog.WarnContext(ctx, "Skipping duplicate ledger id", "index", i, "id", e.ID)
			continue
		}
		seen[e.ID] = struct{}{}
		entries = append(entries, e)
	}
	return entries
}

var errMissingID = errors.New("missing id")

func (s storedEntry) toEntry() (core.Entry, error) {
	if s.ID == "" {
		return core.Entry{}, errMissingID
	}
	t := core.EntryType(s.Type)
	if err := t.Validate(); err != nil {
		return core.Entry{}, err
	}
	amount, err := core.ParseMoney(s.Amount)
	if err != nil {
		return core.Entry{}, err
	}
	date, err := core.ParseDate(s.Date)
	if err != nil {
		return core.Entry{}, err
	}
	return core.Entry{
		ID:          s.ID,
		Type:        t,
		Amount:      amount,
		Category:    s.Category,
		Description: s.Description,
		Date:        date,
	}, nil
}
