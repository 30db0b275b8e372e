package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"
)

type (
	// EntryType separates money coming in from money going out.
	EntryType string

	// Entry is one recorded transaction in the ledger.
	Entry struct {
		ID          string
		Type        EntryType
		Amount      Money
		Category    string
		Description string
		Date        Date
	}

	// Draft carries user-submitted entry fields before validation and
	// ID assignment. Amount arrives as the raw form string.
	Draft struct {
		Type        EntryType
		Amount      string
		Category    string
		Description string
		Date        Date
	}

	// Date is a calendar date with no meaningful time component.
	Date struct {
		time.Time
	}

	// Month is a year+month scope for monthly aggregates.
	Month struct {
		Year  int
		Month time.Month
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid entry type")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidMonth  = errors.New("invalid month")
)

func (t EntryType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses the wire format YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String renders the wire format YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MonthOf returns the Month containing d.
func (d Date) MonthOf() Month {
	return Month{Year: d.Time.Year(), Month: d.Time.Month()}
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses the wire format YYYY-MM.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// String renders the wire format YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label renders a human-readable chart label like "Jan 2024".
func (m Month) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// AddMonths returns the month n calendar months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether d falls inside m, comparing year+month only.
func (m Month) Contains(d Date) bool {
	return d.Time.Year() == m.Year && d.Time.Month() == m.Month
}

// Validate checks required fields on a draft: type, positive amount,
// category, and date. Description stays optional.
func (dr Draft) Validate() error {
	if err := dr.Type.Validate(); err != nil {
		return err
	}
	if _, err := ParseMoney(dr.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(dr.Category) == "" {
		return ErrEmptyCategory
	}
	if err := dr.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// Materialize turns a validated draft into an Entry with the given ID,
// normalizing the amount to two-decimal fixed point.
func (dr Draft) Materialize(entryID string) (Entry, error) {
	if err := dr.Validate(); err != nil {
		return Entry{}, err
	}
	amount, err := ParseMoney(dr.Amount)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:          entryID,
		Type:        dr.Type,
		Amount:      amount,
		Category:    strings.TrimSpace(dr.Category),
		Description: strings.TrimSpace(dr.Description),
		Date:        dr.Date,
	}, nil
}
