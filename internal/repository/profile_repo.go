package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"launchpath/internal/domain"
)

type BusinessProfileRepository interface {
	Get(ctx context.Context, userID string) (domain.BusinessProfile, error)
	Upsert(ctx context.Context, profile domain.BusinessProfile) error
}

type PgBusinessProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgBusinessProfileRepository(pool *pgxpool.Pool) *PgBusinessProfileRepository {
	return &PgBusinessProfileRepository{pool: pool}
}

func (r *PgBusinessProfileRepository) Get(ctx context.Context, userID string) (domain.BusinessProfile, error) {
	const query = `
		SELECT user_id, business_name, business_type, current_stage,
		       target_customer, where_to_reach_them, current_alternative,
		       problem_to_solve, what_offering, quit_criteria,
		       time_per_week, money_available, existing_skills, missing_skills,
		       success_in_30_days, failure_signal, updated_at
		FROM business_profiles
		WHERE user_id = $1
	`
	var p domain.BusinessProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.BusinessName,
		&p.BusinessType,
		&p.CurrentStage,
		&p.TargetCustomer,
		&p.WhereToReachThem,
		&p.CurrentAlternative,
		&p.ProblemToSolve,
		&p.WhatOffering,
		&p.QuitCriteria,
		&p.TimePerWeek,
		&p.MoneyAvailable,
		&p.ExistingSkills,
		&p.MissingSkills,
		&p.SuccessIn30Days,
		&p.FailureSignal,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.BusinessProfile{}, err
	}
	return p, nil
}

func (r *PgBusinessProfileRepository) Upsert(ctx context.Context, p domain.BusinessProfile) error {
	const query = `
		INSERT INTO business_profiles (
			user_id, business_name, business_type, current_stage,
			target_customer, where_to_reach_them, current_alternative,
			problem_to_solve, what_offering, quit_criteria,
			time_per_week, money_available, existing_skills, missing_skills,
			success_in_30_days, failure_signal, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			business_type = EXCLUDED.business_type,
			current_stage = EXCLUDED.current_stage,
			target_customer = EXCLUDED.target_customer,
			where_to_reach_them = EXCLUDED.where_to_reach_them,
			current_alternative = EXCLUDED.current_alternative,
			problem_to_solve = EXCLUDED.problem_to_solve,
			what_offering = EXCLUDED.what_offering,
			quit_criteria = EXCLUDED.quit_criteria,
			time_per_week = EXCLUDED.time_per_week,
			money_available = EXCLUDED.money_available,
			existing_skills = EXCLUDED.existing_skills,
			missing_skills = EXCLUDED.missing_skills,
			success_in_30_days = EXCLUDED.success_in_30_days,
			failure_signal = EXCLUDED.failure_signal,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		p.UserID,
		p.BusinessName,
		p.BusinessType,
		p.CurrentStage,
		p.TargetCustomer,
		p.WhereToReachThem,
		p.CurrentAlternative,
		p.ProblemToSolve,
		p.WhatOffering,
		p.QuitCriteria,
		p.TimePerWeek,
		p.MoneyAvailable,
		nonNilStrings(p.ExistingSkills),
		nonNilStrings(p.MissingSkills),
		p.SuccessIn30Days,
		p.FailureSignal,
		p.UpdatedAt,
	)
	return err
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
