package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"launchpath/internal/domain"
)

// OverdueCommitment une un compromiso vencido con los datos de contacto del usuario.
type OverdueCommitment struct {
	Commitment  domain.Commitment
	Email       string
	DisplayName string
}

type CommitmentRepository interface {
	GetActive(ctx context.Context, userID string) (domain.Commitment, error)
	ListOverdue(ctx context.Context, before time.Time) ([]OverdueCommitment, error)
}

type PgCommitmentRepository struct {
	pool *pgxpool.Pool
}

func NewPgCommitmentRepository(pool *pgxpool.Pool) *PgCommitmentRepository {
	return &PgCommitmentRepository{pool: pool}
}

const commitmentColumns = `id, user_id, action, deadline, is_active, created_at, completed_at`

func (r *PgCommitmentRepository) GetActive(ctx context.Context, userID string) (domain.Commitment, error) {
	const query = `
		SELECT ` + commitmentColumns + `
		FROM commitments
		WHERE user_id = $1 AND is_active
	`
	var c domain.Commitment
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&c.ID,
		&c.UserID,
		&c.Action,
		&c.Deadline,
		&c.IsActive,
		&c.CreatedAt,
		&c.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Commitment{}, err
	}
	return c, err
}

func (r *PgCommitmentRepository) ListOverdue(ctx context.Context, before time.Time) ([]OverdueCommitment, error) {
	const query = `
		SELECT c.id, c.user_id, c.action, c.deadline, c.is_active, c.created_at, c.completed_at,
		       u.email, u.display_name
		FROM commitments c
		JOIN users u ON u.id = c.user_id
		WHERE c.is_active AND c.deadline < $1
		ORDER BY c.deadline ASC
	`
	rows, err := r.pool.Query(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OverdueCommitment
	for rows.Next() {
		var o OverdueCommitment
		c := &o.Commitment
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Action,
			&c.Deadline,
			&c.IsActive,
			&c.CreatedAt,
			&c.CompletedAt,
			&o.Email,
			&o.DisplayName,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func closeActiveCommitment(ctx context.Context, tx pgx.Tx, userID string, closedAt time.Time) error {
	const query = `
		UPDATE commitments
		SET is_active = false, completed_at = $2
		WHERE user_id = $1 AND is_active
	`
	_, err := tx.Exec(ctx, query, userID, closedAt)
	return err
}

func insertCommitment(ctx context.Context, tx pgx.Tx, c domain.Commitment) error {
	const query = `
		INSERT INTO commitments (id, user_id, action, deadline, is_active, created_at)
		VALUES ($1, $2, $3, $4, true, $5)
	`
	_, err := tx.Exec(ctx, query,
		c.ID,
		c.UserID,
		c.Action,
		c.Deadline,
		c.CreatedAt,
	)
	return err
}
