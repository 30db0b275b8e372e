// Package report is the aggregation engine: pure functions that turn the
// flat entry ledger into totals, monthly summaries, and chart-ready series.
//
// Nothing here holds state or mutates its inputs; callers recompute on every
// ledger or month change. Sums accumulate in integer cents, so results are
// exact and independent of entry order.
package report

import (
	"time"

	"budgetbook/internal/core"
)

// TrendMonths is the width of the trend window.
const TrendMonths = 6

// Totals are income/expense sums with their difference.
type Totals struct {
	Income   core.Money
	Expenses core.Money
	Balance  core.Money
}

// Trend is the six-month series ending at the current real-world month,
// oldest first. The three slices are parallel and always TrendMonths long.
type Trend struct {
	Labels   []string
	Income   []core.Money
	Expenses []core.Money
}

// ComputeTotals sums the whole ledger, unscoped by month.
// Balance = income - expenses and may be negative.
func ComputeTotals(entries []core.Entry) Totals {
	var income, expenses int64
	for _, e := range entries {
		switch e.Type {
		case core.Income:
			income += e.Amount.Cents
		case core.Expense:
			expenses += e.Amount.Cents
		}
	}
	return Totals{
		Income:   core.Money{Cents: income},
		Expenses: core.Money{Cents: expenses},
		Balance:  core.Money{Cents: income - expenses},
	}
}

// MonthlyEntries filters the ledger to entries whose date falls in month,
// comparing year+month only. Relative order is preserved.
func MonthlyEntries(entries []core.Entry, month core.Month) []core.Entry {
	var out []core.Entry
	for _, e := range entries {
		if month.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// MonthlyTotals sums only the entries that fall in month.
func MonthlyTotals(entries []core.Entry, month core.Month) Totals {
	return ComputeTotals(MonthlyEntries(entries, month))
}

// CategoryBreakdown maps each expense category to its summed amount within
// month. Categories with no qualifying entry are absent; iteration order is
// unspecified.
func CategoryBreakdown(entries []core.Entry, month core.Month) map[string]core.Money {
	out := make(map[string]core.Money)
	for _, e := range entries {
		if e.Type != core.Expense || !month.Contains(e.Date) {
			continue
		}
		out[e.Category] = out[e.Category].Add(e.Amount)
	}
	return out
}

// TrendSeries computes income/expense totals for the TrendMonths calendar
// months ending at the month of now, oldest to newest.
//
// The window deliberately anchors on the clock rather than the user's
// selected month; the chart always shows the recent past.
func TrendSeries(entries []core.Entry, now time.Time) Trend {
	anchor := core.MonthOf(now)
	t := Trend{
		Labels:   make([]string, TrendMonths),
		Income:   make([]core.Money, TrendMonths),
		Expenses: make([]core.Money, TrendMonths),
	}
	for i := 0; i < TrendMonths; i++ {
		m := anchor.AddMonths(i - (TrendMonths - 1))
		totals := MonthlyTotals(entries, m)
		t.Labels[i] = m.Label()
		t.Income[i] = totals.Income
		t.Expenses[i] = totals.Expenses
	}
	return t
}
