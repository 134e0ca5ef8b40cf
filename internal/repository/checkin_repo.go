package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"launchpath/internal/domain"
)

type CheckInRepository interface {
	// Record guarda el check-in, cierra el compromiso evaluado y abre el siguiente, todo o nada.
	Record(ctx context.Context, checkIn domain.CheckIn, next domain.Commitment) error
	// ListByUser devuelve los check-ins mas recientes primero. limit <= 0 devuelve todos.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.CheckIn, error)
}

type PgCheckInRepository struct {
	pool *pgxpool.Pool
}

func NewPgCheckInRepository(pool *pgxpool.Pool) *PgCheckInRepository {
	return &PgCheckInRepository{pool: pool}
}

func (r *PgCheckInRepository) Record(ctx context.Context, checkIn domain.CheckIn, next domain.Commitment) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const insertCheckIn = `
			INSERT INTO check_ins (
				id, user_id, commitment_id, completed, outcome, learned,
				signal_type, signal_explanation, path_adjustment, next_action, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`
		if _, err := tx.Exec(ctx, insertCheckIn,
			checkIn.ID,
			checkIn.UserID,
			checkIn.CommitmentID,
			checkIn.Completed,
			checkIn.Outcome,
			checkIn.Learned,
			checkIn.SignalType,
			checkIn.SignalExplanation,
			checkIn.PathAdjustment,
			checkIn.NextAction,
			checkIn.CreatedAt,
		); err != nil {
			return err
		}

		const closeCommitment = `
			UPDATE commitments
			SET is_active = false, completed_at = $3
			WHERE id = $1 AND user_id = $2 AND is_active
		`
		tag, err := tx.Exec(ctx, closeCommitment, checkIn.CommitmentID, checkIn.UserID, checkIn.CreatedAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			// otro check-in cerro el compromiso primero
			return pgx.ErrNoRows
		}
		return insertCommitment(ctx, tx, next)
	})
}

func (r *PgCheckInRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.CheckIn, error) {
	const query = `
		SELECT id, user_id, commitment_id, completed, outcome, learned,
		       signal_type, signal_explanation, path_adjustment, next_action, created_at
		FROM check_ins
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.pool.Query(ctx, query, userID, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkIns []domain.CheckIn
	for rows.Next() {
		var ci domain.CheckIn
		if err := rows.Scan(
			&ci.ID,
			&ci.UserID,
			&ci.CommitmentID,
			&ci.Completed,
			&ci.Outcome,
			&ci.Learned,
			&ci.SignalType,
			&ci.SignalExplanation,
			&ci.PathAdjustment,
			&ci.NextAction,
			&ci.CreatedAt,
		); err != nil {
			return nil, err
		}
		checkIns = append(checkIns, ci)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return checkIns, nil
}
