package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"launchpath/internal/domain"
)

type FinanceRepository interface {
	CreateEntry(ctx context.Context, entry domain.FinancialEntry) error
	ListEntries(ctx context.Context, userID string) ([]domain.FinancialEntry, error)
	UpsertWeekly(ctx context.Context, weekly domain.WeeklyCheckIn) error
	ListWeekly(ctx context.Context, userID string) ([]domain.WeeklyCheckIn, error)
}

type PgFinanceRepository struct {
	pool *pgxpool.Pool
}

func NewPgFinanceRepository(pool *pgxpool.Pool) *PgFinanceRepository {
	return &PgFinanceRepository{pool: pool}
}

func (r *PgFinanceRepository) CreateEntry(ctx context.Context, entry domain.FinancialEntry) error {
	const query = `
		INSERT INTO financial_entries (id, user_id, entry_date, entry_type, amount, description, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.EntryDate,
		entry.Type,
		entry.Amount,
		entry.Description,
		entry.Category,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	return err
}

func (r *PgFinanceRepository) ListEntries(ctx context.Context, userID string) ([]domain.FinancialEntry, error) {
	const query = `
		SELECT id, user_id, entry_date, entry_type, amount::float8, description, category, created_at, updated_at
		FROM financial_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC, created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.FinancialEntry
	for rows.Next() {
		var e domain.FinancialEntry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.EntryDate,
			&e.Type,
			&e.Amount,
			&e.Description,
			&e.Category,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PgFinanceRepository) UpsertWeekly(ctx context.Context, w domain.WeeklyCheckIn) error {
	const query = `
		INSERT INTO weekly_check_ins (
			id, user_id, week_of, revenue_this_week, expenses_this_week, clients_or_users,
			wins, blockers, next_week_focus, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (user_id, week_of)
		DO UPDATE SET revenue_this_week = EXCLUDED.revenue_this_week,
		              expenses_this_week = EXCLUDED.expenses_this_week,
		              clients_or_users = EXCLUDED.clients_or_users,
		              wins = EXCLUDED.wins,
		              blockers = EXCLUDED.blockers,
		              next_week_focus = EXCLUDED.next_week_focus,
		              updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		w.ID,
		w.UserID,
		w.WeekOf,
		w.RevenueThisWeek,
		w.ExpensesThisWeek,
		w.ClientsOrUsers,
		w.Wins,
		w.Blockers,
		w.NextWeekFocus,
		w.UpdatedAt,
	)
	return err
}

func (r *PgFinanceRepository) ListWeekly(ctx context.Context, userID string) ([]domain.WeeklyCheckIn, error) {
	const query = `
		SELECT id, user_id, week_of, revenue_this_week::float8, expenses_this_week::float8, clients_or_users,
		       wins, blockers, next_week_focus, created_at, updated_at
		FROM weekly_check_ins
		WHERE user_id = $1
		ORDER BY week_of DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeeklyCheckIn
	for rows.Next() {
		var w domain.WeeklyCheckIn
		if err := rows.Scan(
			&w.ID,
			&w.UserID,
			&w.WeekOf,
			&w.RevenueThisWeek,
			&w.ExpensesThisWeek,
			&w.ClientsOrUsers,
			&w.Wins,
			&w.Blockers,
			&w.NextWeekFocus,
			&w.CreatedAt,
			&w.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
