package http

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"launchpath/internal/domain"
	"launchpath/internal/repository"
)

// memStore guarda en memoria lo que en produccion vive en Postgres.
type memStore struct {
	users       map[string]domain.User
	emails      map[string]string
	states      map[string]domain.UserState
	commitments []domain.Commitment
	checkIns    []domain.CheckIn
	outputs     []domain.ChapterOutput
	completions []domain.PathCompletion
	entries     []domain.FinancialEntry
	weekly      map[string]domain.WeeklyCheckIn
	outcomes    []domain.SessionOutcome
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[string]domain.User),
		emails: make(map[string]string),
		states: make(map[string]domain.UserState),
		weekly: make(map[string]domain.WeeklyCheckIn),
	}
}

func (m *memStore) Create(_ context.Context, user domain.User) error {
	m.users[user.ID] = user
	m.emails[user.Email] = user.ID
	m.states[user.ID] = domain.UserState{UserID: user.ID, CurrentMode: domain.ModeOrient, CreatedAt: user.CreatedAt}
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	id, ok := m.emails[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}

func (m *memStore) Get(_ context.Context, userID string) (domain.UserState, error) {
	s, ok := m.states[userID]
	if !ok {
		return domain.UserState{}, pgx.ErrNoRows
	}
	return s, nil
}

func (m *memStore) Update(_ context.Context, state domain.UserState) error {
	if _, ok := m.states[state.UserID]; !ok {
		return pgx.ErrNoRows
	}
	m.states[state.UserID] = state
	return nil
}

func (m *memStore) GetActive(_ context.Context, userID string) (domain.Commitment, error) {
	for _, c := range m.commitments {
		if c.UserID == userID && c.IsActive {
			return c, nil
		}
	}
	return domain.Commitment{}, pgx.ErrNoRows
}

func (m *memStore) Commit(_ context.Context, state domain.UserState, first domain.Commitment, outcome domain.SessionOutcome) error {
	if _, ok := m.states[state.UserID]; !ok {
		return pgx.ErrNoRows
	}
	m.states[state.UserID] = state
	m.closeActive(first.UserID, "", first.CreatedAt)
	m.commitments = append(m.commitments, first)
	m.outcomes = append(m.outcomes, outcome)
	return nil
}

func (m *memStore) ListRecent(_ context.Context, userID string, limit int) ([]domain.SessionOutcome, error) {
	var out []domain.SessionOutcome
	for i := len(m.outcomes) - 1; i >= 0 && len(out) < limit; i-- {
		if m.outcomes[i].UserID == userID {
			out = append(out, m.outcomes[i])
		}
	}
	return out, nil
}

func (m *memStore) ListOverdue(_ context.Context, _ time.Time) ([]repository.OverdueCommitment, error) {
	return nil, nil
}

func (m *memStore) closeActive(userID, id string, at time.Time) bool {
	for i := range m.commitments {
		c := &m.commitments[i]
		if c.UserID == userID && c.IsActive && (id == "" || c.ID == id) {
			c.IsActive = false
			c.CompletedAt = &at
			return true
		}
	}
	return false
}

func (m *memStore) Record(_ context.Context, checkIn domain.CheckIn, next domain.Commitment) error {
	if !m.closeActive(checkIn.UserID, checkIn.CommitmentID, checkIn.CreatedAt) {
		return pgx.ErrNoRows
	}
	m.checkIns = append(m.checkIns, checkIn)
	m.commitments = append(m.commitments, next)
	return nil
}

func (m *memStore) ListByUser(_ context.Context, userID string, limit int) ([]domain.CheckIn, error) {
	var out []domain.CheckIn
	for _, ci := range m.checkIns {
		if ci.UserID == userID {
			out = append(out, ci)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) CompleteChapter(_ context.Context, output domain.ChapterOutput, pathID, nextChapterID string) error {
	st := m.states[output.UserID]
	if st.CurrentChapterID != output.ChapterID {
		return pgx.ErrNoRows
	}
	m.outputs = append(m.outputs, output)
	st.CurrentChapterID = nextChapterID
	m.states[output.UserID] = st
	if nextChapterID == "" {
		m.completions = append(m.completions, domain.PathCompletion{UserID: output.UserID, PathID: pathID, CompletedAt: output.UpdatedAt})
	}
	return nil
}

func (m *memStore) ListOutputs(_ context.Context, userID string) ([]domain.ChapterOutput, error) {
	var out []domain.ChapterOutput
	for _, o := range m.outputs {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memStore) ListPathCompletions(_ context.Context, userID string) ([]domain.PathCompletion, error) {
	var out []domain.PathCompletion
	for _, c := range m.completions {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) CreateEntry(_ context.Context, e domain.FinancialEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memStore) ListEntries(_ context.Context, userID string) ([]domain.FinancialEntry, error) {
	var out []domain.FinancialEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) UpsertWeekly(_ context.Context, w domain.WeeklyCheckIn) error {
	m.weekly[w.UserID+"|"+w.WeekOf.Format(dateLayout)] = w
	return nil
}

func (m *memStore) ListWeekly(_ context.Context, userID string) ([]domain.WeeklyCheckIn, error) {
	var out []domain.WeeklyCheckIn
	for _, w := range m.weekly {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

type memProfiles struct {
	profiles map[string]domain.BusinessProfile
}

func (m *memProfiles) Get(_ context.Context, userID string) (domain.BusinessProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return domain.BusinessProfile{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *memProfiles) Upsert(_ context.Context, p domain.BusinessProfile) error {
	m.profiles[p.UserID] = p
	return nil
}

type memMilestones struct {
	records map[string]domain.MilestoneRecord
}

func (m *memMilestones) ListByUser(_ context.Context, userID string) ([]domain.MilestoneRecord, error) {
	var out []domain.MilestoneRecord
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memMilestones) Complete(_ context.Context, r domain.MilestoneRecord) error {
	key := r.UserID + "|" + r.MilestoneKey
	if _, ok := m.records[key]; !ok {
		m.records[key] = r
	}
	return nil
}
