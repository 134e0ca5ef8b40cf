package domain

import "time"

type EntryType string

const (
	EntryRevenue EntryType = "revenue"
	EntryExpense EntryType = "expense"
)

type FinancialEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EntryDate   time.Time `json:"entry_date"`
	Type        EntryType `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FinanceSummary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalExpenses float64 `json:"total_expenses"`
	Net           float64 `json:"net"`
}

// WeeklyCheckIn es el reporte operativo semanal, unico por usuario y semana.
type WeeklyCheckIn struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	WeekOf           time.Time `json:"week_of"`
	RevenueThisWeek  *float64  `json:"revenue_this_week,omitempty"`
	ExpensesThisWeek *float64  `json:"expenses_this_week,omitempty"`
	ClientsOrUsers   *int      `json:"clients_or_users,omitempty"`
	Wins             string    `json:"wins,omitempty"`
	Blockers         string    `json:"blockers,omitempty"`
	NextWeekFocus    string    `json:"next_week_focus,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
