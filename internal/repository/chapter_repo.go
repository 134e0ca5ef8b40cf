package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"launchpath/internal/domain"
)

type ChapterRepository interface {
	// CompleteChapter guarda las salidas del capitulo y mueve al usuario a nextChapterID.
	// Si nextChapterID es vacio, registra el path como completado.
	// Devuelve pgx.ErrNoRows si el capitulo ya no es el actual del usuario.
	CompleteChapter(ctx context.Context, output domain.ChapterOutput, pathID, nextChapterID string) error
	ListOutputs(ctx context.Context, userID string) ([]domain.ChapterOutput, error)
	ListPathCompletions(ctx context.Context, userID string) ([]domain.PathCompletion, error)
}

type PgChapterRepository struct {
	pool *pgxpool.Pool
}

func NewPgChapterRepository(pool *pgxpool.Pool) *PgChapterRepository {
	return &PgChapterRepository{pool: pool}
}

func (r *PgChapterRepository) CompleteChapter(ctx context.Context, output domain.ChapterOutput, pathID, nextChapterID string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const upsertOutput = `
			INSERT INTO chapter_outputs (id, user_id, chapter_id, outputs, completed, completed_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, true, $5, $6, $6)
			ON CONFLICT (user_id, chapter_id)
			DO UPDATE SET outputs = EXCLUDED.outputs,
			              completed = true,
			              completed_at = EXCLUDED.completed_at,
			              updated_at = EXCLUDED.updated_at
		`
		if _, err := tx.Exec(ctx, upsertOutput,
			output.ID,
			output.UserID,
			output.ChapterID,
			output.Outputs,
			output.CompletedAt,
			output.UpdatedAt,
		); err != nil {
			return err
		}

		const advance = `
			UPDATE user_state
			SET current_chapter_id = $2, updated_at = $3
			WHERE user_id = $1 AND current_chapter_id = $4
		`
		tag, err := tx.Exec(ctx, advance, output.UserID, nullableString(nextChapterID), output.UpdatedAt, output.ChapterID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			// otra request ya avanzo este capitulo
			return pgx.ErrNoRows
		}
		if nextChapterID != "" {
			return nil
		}

		const complete = `
			INSERT INTO path_completions (id, user_id, path_id, completed_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, path_id) DO NOTHING
		`
		_, err = tx.Exec(ctx, complete, uuid.NewString(), output.UserID, pathID, output.UpdatedAt)
		return err
	})
}

func (r *PgChapterRepository) ListOutputs(ctx context.Context, userID string) ([]domain.ChapterOutput, error) {
	const query = `
		SELECT id, user_id, chapter_id, outputs, completed, completed_at, created_at, updated_at
		FROM chapter_outputs
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outputs []domain.ChapterOutput
	for rows.Next() {
		var o domain.ChapterOutput
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.ChapterID,
			&o.Outputs,
			&o.Completed,
			&o.CompletedAt,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		outputs = append(outputs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func (r *PgChapterRepository) ListPathCompletions(ctx context.Context, userID string) ([]domain.PathCompletion, error) {
	const query = `
		SELECT id, user_id, path_id, completed_at
		FROM path_completions
		WHERE user_id = $1
		ORDER BY completed_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []domain.PathCompletion
	for rows.Next() {
		var pc domain.PathCompletion
		if err := rows.Scan(&pc.ID, &pc.UserID, &pc.PathID, &pc.CompletedAt); err != nil {
			return nil, err
		}
		completions = append(completions, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return completions, nil
}
