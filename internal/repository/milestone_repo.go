package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"launchpath/internal/domain"
)

type MilestoneRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.MilestoneRecord, error)
	// Complete es idempotente: un hito ya registrado conserva su fecha original.
	Complete(ctx context.Context, record domain.MilestoneRecord) error
}

type PgMilestoneRepository struct {
	pool *pgxpool.Pool
}

func NewPgMilestoneRepository(pool *pgxpool.Pool) *PgMilestoneRepository {
	return &PgMilestoneRepository{pool: pool}
}

func (r *PgMilestoneRepository) ListByUser(ctx context.Context, userID string) ([]domain.MilestoneRecord, error) {
	const query = `
		SELECT id, user_id, milestone_key, completed_at
		FROM milestone_records
		WHERE user_id = $1
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MilestoneRecord
	for rows.Next() {
		var rec domain.MilestoneRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.MilestoneKey, &rec.CompletedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PgMilestoneRepository) Complete(ctx context.Context, record domain.MilestoneRecord) error {
	const query = `
		INSERT INTO milestone_records (id, user_id, milestone_key, completed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, milestone_key) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.MilestoneKey,
		record.CompletedAt,
	)
	return err
}
