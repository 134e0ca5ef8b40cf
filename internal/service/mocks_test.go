package service

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"launchpath/internal/domain"
	"launchpath/internal/email"
	"launchpath/internal/repository"
)

func domainUser(id string) domain.User {
	return domain.User{ID: id, Email: id + "@example.com"}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type mockUserRepo struct {
	byID      map[string]domain.User
	byEmail   map[string]string
	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}

type mockStateRepo struct {
	states      map[string]domain.UserState
	updates     int
	updateErr   error
	commitErr   error
	commitments *mockCommitmentRepo
	outcomes    []domain.SessionOutcome
}

func newMockStateRepo(states ...domain.UserState) *mockStateRepo {
	m := &mockStateRepo{states: make(map[string]domain.UserState)}
	for _, s := range states {
		m.states[s.UserID] = s
	}
	return m
}

func (m *mockStateRepo) Get(_ context.Context, userID string) (domain.UserState, error) {
	s, ok := m.states[userID]
	if !ok {
		return domain.UserState{}, pgx.ErrNoRows
	}
	return s, nil
}

func (m *mockStateRepo) Update(_ context.Context, state domain.UserState) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.states[state.UserID]; !ok {
		return pgx.ErrNoRows
	}
	m.updates++
	m.states[state.UserID] = state
	return nil
}

func (m *mockStateRepo) Commit(_ context.Context, state domain.UserState, first domain.Commitment, outcome domain.SessionOutcome) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	if _, ok := m.states[state.UserID]; !ok {
		return pgx.ErrNoRows
	}
	if m.commitments == nil {
		m.commitments = &mockCommitmentRepo{}
	}
	m.commitments.close(first.UserID, "", first.CreatedAt)
	first.IsActive = true
	m.commitments.all = append(m.commitments.all, first)
	m.states[state.UserID] = state
	m.outcomes = append(m.outcomes, outcome)
	return nil
}

func (m *mockStateRepo) ListRecent(_ context.Context, userID string, limit int) ([]domain.SessionOutcome, error) {
	var out []domain.SessionOutcome
	for i := len(m.outcomes) - 1; i >= 0 && len(out) < limit; i-- {
		if m.outcomes[i].UserID == userID {
			out = append(out, m.outcomes[i])
		}
	}
	return out, nil
}

type mockCommitmentRepo struct {
	all     []domain.Commitment
	overdue []repository.OverdueCommitment
}

func (m *mockCommitmentRepo) GetActive(_ context.Context, userID string) (domain.Commitment, error) {
	for _, c := range m.all {
		if c.UserID == userID && c.IsActive {
			return c, nil
		}
	}
	return domain.Commitment{}, pgx.ErrNoRows
}

func (m *mockCommitmentRepo) ListOverdue(_ context.Context, _ time.Time) ([]repository.OverdueCommitment, error) {
	return m.overdue, nil
}

// close desactiva el compromiso activo del usuario; con id no vacio solo si coincide.
func (m *mockCommitmentRepo) close(userID, id string, at time.Time) bool {
	for i := range m.all {
		c := &m.all[i]
		if c.UserID == userID && c.IsActive && (id == "" || c.ID == id) {
			c.IsActive = false
			closed := at
			c.CompletedAt = &closed
			return true
		}
	}
	return false
}

func (m *mockCommitmentRepo) active(userID string) []domain.Commitment {
	var out []domain.Commitment
	for _, c := range m.all {
		if c.UserID == userID && c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

type mockCheckInRepo struct {
	commitments *mockCommitmentRepo
	checkIns    []domain.CheckIn
	recordErr   error
}

func (m *mockCheckInRepo) Record(_ context.Context, checkIn domain.CheckIn, next domain.Commitment) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	if !m.commitments.close(checkIn.UserID, checkIn.CommitmentID, checkIn.CreatedAt) {
		return pgx.ErrNoRows
	}
	m.checkIns = append(m.checkIns, checkIn)
	next.IsActive = true
	m.commitments.all = append(m.commitments.all, next)
	return nil
}

func (m *mockCheckInRepo) ListByUser(_ context.Context, userID string, limit int) ([]domain.CheckIn, error) {
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

type completedChapter struct {
	output domain.ChapterOutput
	pathID string
	nextID string
}

type mockChapterRepo struct {
	states    *mockStateRepo
	completed []completedChapter
}

func (m *mockChapterRepo) CompleteChapter(_ context.Context, output domain.ChapterOutput, pathID, nextChapterID string) error {
	st := m.states.states[output.UserID]
	if st.CurrentChapterID != output.ChapterID {
		return pgx.ErrNoRows
	}
	m.completed = append(m.completed, completedChapter{output: output, pathID: pathID, nextID: nextChapterID})
	st.CurrentChapterID = nextChapterID
	m.states.states[output.UserID] = st
	return nil
}

func (m *mockChapterRepo) ListOutputs(_ context.Context, userID string) ([]domain.ChapterOutput, error) {
	var out []domain.ChapterOutput
	for _, c := range m.completed {
		if c.output.UserID == userID {
			out = append(out, c.output)
		}
	}
	return out, nil
}

func (m *mockChapterRepo) ListPathCompletions(_ context.Context, userID string) ([]domain.PathCompletion, error) {
	var out []domain.PathCompletion
	for _, c := range m.completed {
		if c.output.UserID == userID && c.nextID == "" {
			out = append(out, domain.PathCompletion{UserID: userID, PathID: c.pathID, CompletedAt: c.output.UpdatedAt})
		}
	}
	return out, nil
}

type mockMilestoneRepo struct {
	records map[string]domain.MilestoneRecord
}

func newMockMilestoneRepo() *mockMilestoneRepo {
	return &mockMilestoneRepo{records: make(map[string]domain.MilestoneRecord)}
}

func (m *mockMilestoneRepo) ListByUser(_ context.Context, userID string) ([]domain.MilestoneRecord, error) {
	var out []domain.MilestoneRecord
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockMilestoneRepo) Complete(_ context.Context, r domain.MilestoneRecord) error {
	key := r.UserID + "|" + r.MilestoneKey
	if _, ok := m.records[key]; ok {
		return nil
	}
	m.records[key] = r
	return nil
}

type mockFinanceRepo struct {
	entries []domain.FinancialEntry
	weekly  map[string]domain.WeeklyCheckIn
}

func newMockFinanceRepo() *mockFinanceRepo {
	return &mockFinanceRepo{weekly: make(map[string]domain.WeeklyCheckIn)}
}

func (m *mockFinanceRepo) CreateEntry(_ context.Context, e domain.FinancialEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockFinanceRepo) ListEntries(_ context.Context, userID string) ([]domain.FinancialEntry, error) {
	var out []domain.FinancialEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockFinanceRepo) UpsertWeekly(_ context.Context, w domain.WeeklyCheckIn) error {
	m.weekly[w.UserID+"|"+w.WeekOf.Format("2006-01-02")] = w
	return nil
}

func (m *mockFinanceRepo) ListWeekly(_ context.Context, userID string) ([]domain.WeeklyCheckIn, error) {
	var out []domain.WeeklyCheckIn
	for _, w := range m.weekly {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

type mockProfileRepo struct {
	profiles map[string]domain.BusinessProfile
	getErr   error
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]domain.BusinessProfile)}
}

func (m *mockProfileRepo) Get(_ context.Context, userID string) (domain.BusinessProfile, error) {
	if m.getErr != nil {
		return domain.BusinessProfile{}, m.getErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return domain.BusinessProfile{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockProfileRepo) Upsert(_ context.Context, p domain.BusinessProfile) error {
	m.profiles[p.UserID] = p
	return nil
}

type mockSender struct {
	sent []email.Reminder
	fail map[string]error
}

func (m *mockSender) SendCommitmentReminder(_ context.Context, r email.Reminder) error {
	if err := m.fail[r.To]; err != nil {
		return err
	}
	m.sent = append(m.sent, r)
	return nil
}
