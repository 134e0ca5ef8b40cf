package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"launchpath/internal/domain"
)

type UserStateRepository interface {
	Get(ctx context.Context, userID string) (domain.UserState, error)
	Update(ctx context.Context, state domain.UserState) error
	// Commit guarda la direccion elegida, reemplaza el compromiso activo y anota el cambio, todo o nada.
	Commit(ctx context.Context, state domain.UserState, first domain.Commitment, outcome domain.SessionOutcome) error
}

// execer lo cumplen tanto el pool como una transaccion.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type PgUserStateRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserStateRepository(pool *pgxpool.Pool) *PgUserStateRepository {
	return &PgUserStateRepository{pool: pool}
}

func (r *PgUserStateRepository) Get(ctx context.Context, userID string) (domain.UserState, error) {
	const query = `
		SELECT user_id, current_mode, current_direction, eliminated_directions,
		       patience, rejection_tolerance, build_vs_sell, leverage,
		       current_chapter_id, created_at, updated_at
		FROM user_state
		WHERE user_id = $1
	`
	var (
		state                                   domain.UserState
		direction, chapterID                    *string
		patience, rejection, buildVsSell, lever *float64
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&state.UserID,
		&state.CurrentMode,
		&direction,
		&state.EliminatedDirections,
		&patience,
		&rejection,
		&buildVsSell,
		&lever,
		&chapterID,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.UserState{}, err
	}
	if err != nil {
		return domain.UserState{}, err
	}

	if direction != nil {
		state.CurrentDirection = *direction
	}
	if chapterID != nil {
		state.CurrentChapterID = *chapterID
	}
	if patience != nil && rejection != nil && buildVsSell != nil && lever != nil {
		state.Evaluation = &domain.Evaluation{
			Patience:           *patience,
			RejectionTolerance: *rejection,
			BuildVsSell:        *buildVsSell,
			Leverage:           *lever,
		}
	}
	return state, nil
}

func (r *PgUserStateRepository) Update(ctx context.Context, state domain.UserState) error {
	return updateState(ctx, r.pool, state)
}

func (r *PgUserStateRepository) Commit(ctx context.Context, state domain.UserState, first domain.Commitment, outcome domain.SessionOutcome) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := updateState(ctx, tx, state); err != nil {
			return err
		}
		if err := closeActiveCommitment(ctx, tx, state.UserID, first.CreatedAt); err != nil {
			return err
		}
		if err := insertCommitment(ctx, tx, first); err != nil {
			return err
		}
		return insertSessionOutcome(ctx, tx, outcome)
	})
}

func updateState(ctx context.Context, db execer, state domain.UserState) error {
	const query = `
		UPDATE user_state
		SET current_mode = $2,
		    current_direction = $3,
		    eliminated_directions = $4,
		    patience = $5,
		    rejection_tolerance = $6,
		    build_vs_sell = $7,
		    leverage = $8,
		    current_chapter_id = $9,
		    updated_at = $10
		WHERE user_id = $1
	`
	var patience, rejection, buildVsSell, lever *float64
	if e := state.Evaluation; e != nil {
		patience, rejection, buildVsSell, lever = &e.Patience, &e.RejectionTolerance, &e.BuildVsSell, &e.Leverage
	}
	eliminated := state.EliminatedDirections
	if eliminated == nil {
		eliminated = []string{}
	}

	tag, err := db.Exec(ctx, query,
		state.UserID,
		state.CurrentMode,
		nullableString(state.CurrentDirection),
		eliminated,
		patience,
		rejection,
		buildVsSell,
		lever,
		nullableString(state.CurrentChapterID),
		state.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
