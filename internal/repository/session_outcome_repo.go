package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"launchpath/internal/domain"
)

// SessionOutcomeRepository lee el registro de "que cambio". Las altas ocurren dentro de otras transacciones.
type SessionOutcomeRepository interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.SessionOutcome, error)
}

type PgSessionOutcomeRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionOutcomeRepository(pool *pgxpool.Pool) *PgSessionOutcomeRepository {
	return &PgSessionOutcomeRepository{pool: pool}
}

func (r *PgSessionOutcomeRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.SessionOutcome, error) {
	const query = `
		SELECT id, user_id, what_changed, created_at
		FROM session_outcomes
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []domain.SessionOutcome
	for rows.Next() {
		var o domain.SessionOutcome
		if err := rows.Scan(&o.ID, &o.UserID, &o.WhatChanged, &o.CreatedAt); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func insertSessionOutcome(ctx context.Context, tx pgx.Tx, o domain.SessionOutcome) error {
	const query = `
		INSERT INTO session_outcomes (id, user_id, what_changed, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := tx.Exec(ctx, query, o.ID, o.UserID, o.WhatChanged, o.CreatedAt)
	return err
}
