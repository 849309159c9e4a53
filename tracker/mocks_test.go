package tracker

import (
	"context"
	"io"

	"github.com/Thiht/transactor"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/worklog-go"
)

// mockTicketRepo is a mock implementation of worklog.TicketRepo
type mockTicketRepo struct {
	insertFunc func(context.Context, worklog.TicketRecord) (worklog.ExistingTicketRecord, error)
	updateFunc func(context.Context, worklog.TicketID, worklog.TicketRecord) (worklog.ExistingTicketRecord, error)
	getFunc    func(context.Context, worklog.TicketID) (worklog.ExistingTicketRecord, error)
	listFunc   func(context.Context, worklog.Query) ([]worklog.ExistingTicketRecord, error)
}

func (m *mockTicketRepo) InsertTicket(ctx context.Context, t worklog.TicketRecord) (worklog.ExistingTicketRecord, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, t)
	}
	return worklog.ExistingTicketRecord{TicketRecord: t}, nil
}

func (m *mockTicketRepo) UpdateTicket(ctx context.Context, id worklog.TicketID, t worklog.TicketRecord) (worklog.ExistingTicketRecord, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, t)
	}
	return worklog.ExistingTicketRecord{
		ExistingRecord: worklog.ExistingRecord[worklog.TicketID]{ID: id},
		TicketRecord:   t,
	}, nil
}

func (m *mockTicketRepo) GetTicket(ctx context.Context, id worklog.TicketID) (worklog.ExistingTicketRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return worklog.ExistingTicketRecord{}, worklog.ErrNotFound
}

func (m *mockTicketRepo) ListTickets(ctx context.Context, q worklog.Query) ([]worklog.ExistingTicketRecord, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return nil, nil
}

// mockLearningLogRepo is a mock implementation of worklog.LearningLogRepo
type mockLearningLogRepo struct {
	insertFunc func(context.Context, worklog.LearningLogRecord) (worklog.ExistingLearningLogRecord, error)
	getFunc    func(context.Context, worklog.LearningLogID) (worklog.ExistingLearningLogRecord, error)
	listFunc   func(context.Context, worklog.Query) ([]worklog.ExistingLearningLogRecord, error)
}

func (m *mockLearningLogRepo) InsertLearningLog(ctx context.Context, l worklog.LearningLogRecord) (worklog.ExistingLearningLogRecord, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, l)
	}
	return worklog.ExistingLearningLogRecord{LearningLogRecord: l}, nil
}

func (m *mockLearningLogRepo) UpdateLearningLog(ctx context.Context, id worklog.LearningLogID, l worklog.LearningLogRecord) (worklog.ExistingLearningLogRecord, error) {
	return worklog.ExistingLearningLogRecord{LearningLogRecord: l}, nil
}

func (m *mockLearningLogRepo) GetLearningLog(ctx context.Context, id worklog.LearningLogID) (worklog.ExistingLearningLogRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return worklog.ExistingLearningLogRecord{}, worklog.ErrNotFound
}

func (m *mockLearningLogRepo) ListLearningLogs(ctx context.Context, q worklog.Query) ([]worklog.ExistingLearningLogRecord, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return nil, nil
}

// mockProgressRepo is a mock implementation of worklog.DailyProgressRepo
type mockProgressRepo struct {
	insertFunc func(context.Context, worklog.DailyProgressRecord) (worklog.ExistingDailyProgressRecord, error)
	updateFunc func(context.Context, worklog.ProgressID, worklog.DailyProgressRecord) (worklog.ExistingDailyProgressRecord, error)
	listFunc   func(context.Context, worklog.Query) ([]worklog.ExistingDailyProgressRecord, error)
}

func (m *mockProgressRepo) InsertProgress(ctx context.Context, p worklog.DailyProgressRecord) (worklog.ExistingDailyProgressRecord, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, p)
	}
	return worklog.ExistingDailyProgressRecord{DailyProgressRecord: p}, nil
}

func (m *mockProgressRepo) UpdateProgress(ctx context.Context, id worklog.ProgressID, p worklog.DailyProgressRecord) (worklog.ExistingDailyProgressRecord, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, p)
	}
	return worklog.ExistingDailyProgressRecord{DailyProgressRecord: p}, nil
}

func (m *mockProgressRepo) GetProgress(ctx context.Context, id worklog.ProgressID) (worklog.ExistingDailyProgressRecord, error) {
	return worklog.ExistingDailyProgressRecord{}, worklog.ErrNotFound
}

func (m *mockProgressRepo) ListProgress(ctx context.Context, q worklog.Query) ([]worklog.ExistingDailyProgressRecord, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return nil, nil
}

// mockProfileRepo is a mock implementation of worklog.ProfileRepo
type mockProfileRepo struct {
	upsertFunc func(context.Context, worklog.UserID, worklog.ProfileRecord) (worklog.ExistingProfileRecord, error)
	getFunc    func(context.Context, worklog.UserID) (worklog.ExistingProfileRecord, error)
}

func (m *mockProfileRepo) UpsertProfile(ctx context.Context, id worklog.UserID, p worklog.ProfileRecord) (worklog.ExistingProfileRecord, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, id, p)
	}
	return worklog.ExistingProfileRecord{
		ExistingRecord: worklog.ExistingRecord[worklog.UserID]{ID: id},
		ProfileRecord:  p,
	}, nil
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, id worklog.UserID) (worklog.ExistingProfileRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return worklog.ExistingProfileRecord{}, worklog.ErrNotFound
}

// mockTransactor is a mock implementation of transactor.Transactor
type mockTransactor struct {
	calls                 int
	withinTransactionFunc func(context.Context, func(context.Context) error) error
}

func (m *mockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	m.calls++
	if m.withinTransactionFunc != nil {
		return m.withinTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

var (
	_ worklog.TicketRepo        = (*mockTicketRepo)(nil)
	_ worklog.LearningLogRepo   = (*mockLearningLogRepo)(nil)
	_ worklog.DailyProgressRepo = (*mockProgressRepo)(nil)
	_ worklog.ProfileRepo       = (*mockProfileRepo)(nil)
	_ transactor.Transactor     = (*mockTransactor)(nil)
)

func newTestService(repos Repos, tx transactor.Transactor, opts ...Option) *Service {
	if repos.Tickets == nil {
		repos.Tickets = &mockTicketRepo{}
	}
	if repos.Learning == nil {
		repos.Learning = &mockLearningLogRepo{}
	}
	if repos.Progress == nil {
		repos.Progress = &mockProgressRepo{}
	}
	if repos.Profiles == nil {
		repos.Profiles = &mockProfileRepo{}
	}
	if tx == nil {
		tx = &mockTransactor{}
	}
	return NewService(repos, tx, log.New(io.Discard), opts...)
}
