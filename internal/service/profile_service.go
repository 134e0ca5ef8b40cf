package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"launchpath/internal/domain"
	"launchpath/internal/repository"
)

var ErrInvalidProfile = errors.New("invalid business profile")

// ProfileService guarda lo que el usuario declara sobre su negocio.
type ProfileService struct {
	logger   *zap.Logger
	profiles repository.BusinessProfileRepository
	now      func() time.Time
}

func NewProfileService(logger *zap.Logger, profiles repository.BusinessProfileRepository) *ProfileService {
	return &ProfileService{
		logger:   logger,
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get devuelve un perfil vacio en etapa idea si el usuario todavia no guardo ninguno.
func (s *ProfileService) Get(ctx context.Context, userID string) (domain.BusinessProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return emptyProfile(userID), nil
	}
	if err != nil {
		return domain.BusinessProfile{}, fmt.Errorf("load business profile: %w", err)
	}
	return p, nil
}

func (s *ProfileService) Update(ctx context.Context, userID string, p domain.BusinessProfile) (domain.BusinessProfile, error) {
	p = normalizeProfile(p)
	if !p.CurrentStage.Valid() {
		return domain.BusinessProfile{}, fmt.Errorf("%w: unknown stage %q", ErrInvalidProfile, p.CurrentStage)
	}
	p.UserID = userID
	p.UpdatedAt = s.now()
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return domain.BusinessProfile{}, fmt.Errorf("save business profile: %w", err)
	}
	s.logger.Info("business profile saved", zap.String("user_id", userID), zap.String("stage", string(p.CurrentStage)))
	return p, nil
}

func emptyProfile(userID string) domain.BusinessProfile {
	return domain.BusinessProfile{
		UserID:         userID,
		CurrentStage:   domain.StageIdea,
		ExistingSkills: []string{},
		MissingSkills:  []string{},
	}
}

func normalizeProfile(p domain.BusinessProfile) domain.BusinessProfile {
	for _, field := range []*string{
		&p.BusinessName,
		&p.BusinessType,
		&p.TargetCustomer,
		&p.WhereToReachThem,
		&p.CurrentAlternative,
		&p.ProblemToSolve,
		&p.WhatOffering,
		&p.QuitCriteria,
		&p.TimePerWeek,
		&p.MoneyAvailable,
		&p.SuccessIn30Days,
		&p.FailureSignal,
	} {
		*field = strings.TrimSpace(*field)
	}
	if p.CurrentStage == "" {
		p.CurrentStage = domain.StageIdea
	}
	p.ExistingSkills = compactSkills(p.ExistingSkills)
	p.MissingSkills = compactSkills(p.MissingSkills)
	return p
}

func compactSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
