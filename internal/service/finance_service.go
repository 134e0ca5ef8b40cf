package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"launchpath/internal/domain"
	"launchpath/internal/repository"
)

var ErrInvalidEntry = errors.New("invalid financial entry")

type FinancialEntryInput struct {
	EntryDate   time.Time
	Type        domain.EntryType
	Amount      float64
	Description string
	Category    string
}

type WeeklyCheckInInput struct {
	WeekOf           time.Time
	RevenueThisWeek  *float64
	ExpensesThisWeek *float64
	ClientsOrUsers   *int
	Wins             string
	Blockers         string
	NextWeekFocus    string
}

type FinanceReport struct {
	Entries []domain.FinancialEntry `json:"entries"`
	Summary domain.FinanceSummary   `json:"summary"`
}

type FinanceService struct {
	finances repository.FinanceRepository
	now      func() time.Time
}

func NewFinanceService(finances repository.FinanceRepository) *FinanceService {
	return &FinanceService{
		finances: finances,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *FinanceService) AddEntry(ctx context.Context, userID string, input FinancialEntryInput) (domain.FinancialEntry, error) {
	if input.Type != domain.EntryRevenue && input.Type != domain.EntryExpense {
		return domain.FinancialEntry{}, fmt.Errorf("%w: type must be revenue or expense", ErrInvalidEntry)
	}
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) || input.Amount <= 0 {
		return domain.FinancialEntry{}, fmt.Errorf("%w: amount must be positive", ErrInvalidEntry)
	}
	desc := strings.TrimSpace(input.Description)
	if desc == "" {
		return domain.FinancialEntry{}, fmt.Errorf("%w: description required", ErrInvalidEntry)
	}
	if input.EntryDate.IsZero() {
		return domain.FinancialEntry{}, fmt.Errorf("%w: entry_date required", ErrInvalidEntry)
	}

	now := s.now()
	entry := domain.FinancialEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		EntryDate:   truncateDay(input.EntryDate),
		Type:        input.Type,
		Amount:      math.Round(input.Amount*100) / 100,
		Description: desc,
		Category:    strings.TrimSpace(input.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.finances.CreateEntry(ctx, entry); err != nil {
		return domain.FinancialEntry{}, err
	}
	return entry, nil
}

func (s *FinanceService) Report(ctx context.Context, userID string) (FinanceReport, error) {
	entries, err := s.finances.ListEntries(ctx, userID)
	if err != nil {
		return FinanceReport{}, err
	}
	if entries == nil {
		entries = []domain.FinancialEntry{}
	}
	return FinanceReport{Entries: entries, Summary: Summarize(entries)}, nil
}

// UpsertWeekly guarda el reporte semanal; week_of se normaliza al lunes de esa semana.
func (s *FinanceService) UpsertWeekly(ctx context.Context, userID string, input WeeklyCheckInInput) (domain.WeeklyCheckIn, error) {
	if input.WeekOf.IsZero() {
		return domain.WeeklyCheckIn{}, fmt.Errorf("%w: week_of required", ErrInvalidEntry)
	}
	for _, v := range []*float64{input.RevenueThisWeek, input.ExpensesThisWeek} {
		if v != nil && (*v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return domain.WeeklyCheckIn{}, fmt.Errorf("%w: amounts cannot be negative", ErrInvalidEntry)
		}
	}
	if input.ClientsOrUsers != nil && *input.ClientsOrUsers < 0 {
		return domain.WeeklyCheckIn{}, fmt.Errorf("%w: clients_or_users cannot be negative", ErrInvalidEntry)
	}

	now := s.now()
	weekly := domain.WeeklyCheckIn{
		ID:               uuid.NewString(),
		UserID:           userID,
		WeekOf:           WeekStart(input.WeekOf),
		RevenueThisWeek:  input.RevenueThisWeek,
		ExpensesThisWeek: input.ExpensesThisWeek,
		ClientsOrUsers:   input.ClientsOrUsers,
		Wins:             strings.TrimSpace(input.Wins),
		Blockers:         strings.TrimSpace(input.Blockers),
		NextWeekFocus:    strings.TrimSpace(input.NextWeekFocus),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.finances.UpsertWeekly(ctx, weekly); err != nil {
		return domain.WeeklyCheckIn{}, err
	}
	return weekly, nil
}

func (s *FinanceService) Weekly(ctx context.Context, userID string) ([]domain.WeeklyCheckIn, error) {
	return s.finances.ListWeekly(ctx, userID)
}

// Summarize suma ingresos y gastos.
func Summarize(entries []domain.FinancialEntry) domain.FinanceSummary {
	var sum domain.FinanceSummary
	for _, e := range entries {
		switch e.Type {
		case domain.EntryRevenue:
			sum.TotalRevenue += e.Amount
		case domain.EntryExpense:
			sum.TotalExpenses += e.Amount
		}
	}
	sum.TotalRevenue = math.Round(sum.TotalRevenue*100) / 100
	sum.TotalExpenses = math.Round(sum.TotalExpenses*100) / 100
	sum.Net = math.Round((sum.TotalRevenue-sum.TotalExpenses)*100) / 100
	return sum
}

// WeekStart devuelve el lunes (00:00 UTC) de la semana de t.
func WeekStart(t time.Time) time.Time {
	d := truncateDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
