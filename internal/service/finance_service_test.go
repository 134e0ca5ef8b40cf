package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpath/internal/domain"
)

func TestWeekStart(t *testing.T) {
	monday := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   time.Time
	}{
		{"monday", monday},
		{"wednesday afternoon", time.Date(2024, 4, 3, 15, 30, 0, 0, time.UTC)},
		{"sunday night", time.Date(2024, 4, 7, 23, 59, 0, 0, time.UTC)},
		{"other zone", time.Date(2024, 4, 2, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, monday, WeekStart(tt.in))
		})
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize([]domain.FinancialEntry{
		{Type: domain.EntryRevenue, Amount: 500.10},
		{Type: domain.EntryRevenue, Amount: 250.20},
		{Type: domain.EntryExpense, Amount: 99.99},
	})
	assert.InDelta(t, 750.30, sum.TotalRevenue, 1e-9)
	assert.InDelta(t, 99.99, sum.TotalExpenses, 1e-9)
	assert.InDelta(t, 650.31, sum.Net, 1e-9)

	assert.Equal(t, domain.FinanceSummary{}, Summarize(nil))
}

func TestFinanceService_AddEntryValidation(t *testing.T) {
	svc := NewFinanceService(newMockFinanceRepo())
	day := time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input FinancialEntryInput
	}{
		{"bad type", FinancialEntryInput{EntryDate: day, Type: "gift", Amount: 10, Description: "x"}},
		{"zero amount", FinancialEntryInput{EntryDate: day, Type: domain.EntryRevenue, Amount: 0, Description: "x"}},
		{"negative amount", FinancialEntryInput{EntryDate: day, Type: domain.EntryExpense, Amount: -5, Description: "x"}},
		{"no description", FinancialEntryInput{EntryDate: day, Type: domain.EntryRevenue, Amount: 10, Description: "  "}},
		{"no date", FinancialEntryInput{Type: domain.EntryRevenue, Amount: 10, Description: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddEntry(context.Background(), "u1", tt.input)
			assert.ErrorIs(t, err, ErrInvalidEntry)
		})
	}
}

func TestFinanceService_ReportAndWeekly(t *testing.T) {
	repo := newMockFinanceRepo()
	svc := NewFinanceService(repo)
	ctx := context.Background()

	entry, err := svc.AddEntry(ctx, "u1", FinancialEntryInput{
		EntryDate:   time.Date(2024, 4, 3, 17, 0, 0, 0, time.UTC),
		Type:        domain.EntryRevenue,
		Amount:      120.456,
		Description: " First client deposit ",
	})
	require.NoError(t, err)
	assert.Equal(t, 120.46, entry.Amount)
	assert.Equal(t, "First client deposit", entry.Description)
	assert.Equal(t, time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC), entry.EntryDate)

	_, err = svc.AddEntry(ctx, "u1", FinancialEntryInput{
		EntryDate: time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC), Type: domain.EntryExpense, Amount: 20, Description: "Domain",
	})
	require.NoError(t, err)

	report, err := svc.Report(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, report.Entries, 2)
	assert.InDelta(t, 100.46, report.Summary.Net, 1e-9)

	revenue := 300.0
	clients := 2
	first, err := svc.UpsertWeekly(ctx, "u1", WeeklyCheckInInput{
		WeekOf: time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC), RevenueThisWeek: &revenue, ClientsOrUsers: &clients, Wins: "Two calls",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), first.WeekOf)

	_, err = svc.UpsertWeekly(ctx, "u1", WeeklyCheckInInput{WeekOf: time.Date(2024, 4, 6, 0, 0, 0, 0, time.UTC), Wins: "Closed one"})
	require.NoError(t, err)
	weekly, err := svc.Weekly(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, "Closed one", weekly[0].Wins)

	negative := -1.0
	_, err = svc.UpsertWeekly(ctx, "u1", WeeklyCheckInInput{WeekOf: time.Now(), ExpensesThisWeek: &negative})
	assert.ErrorIs(t, err, ErrInvalidEntry)
}
