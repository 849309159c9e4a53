package worklog

import "context"

type TicketRepo interface {
	InsertTicket(context.Context, TicketRecord) (ExistingTicketRecord, error)
	UpdateTicket(ctx context.Context, id TicketID, t TicketRecord) (ExistingTicketRecord, error)
	GetTicket(ctx context.Context, id TicketID) (ExistingTicketRecord, error)
	ListTickets(context.Context, Query) ([]ExistingTicketRecord, error)
}

type LearningLogRepo interface {
	InsertLearningLog(context.Context, LearningLogRecord) (ExistingLearningLogRecord, error)
	UpdateLearningLog(ctx context.Context, id LearningLogID, l LearningLogRecord) (ExistingLearningLogRecord, error)
	GetLearningLog(ctx context.Context, id LearningLogID) (ExistingLearningLogRecord, error)
	ListLearningLogs(context.Context, Query) ([]ExistingLearningLogRecord, error)
}

type DailyProgressRepo interface {
	InsertProgress(context.Context, DailyProgressRecord) (ExistingDailyProgressRecord, error)
	UpdateProgress(ctx context.Context, id ProgressID, p DailyProgressRecord) (ExistingDailyProgressRecord, error)
	GetProgress(ctx context.Context, id ProgressID) (ExistingDailyProgressRecord, error)
	ListProgress(context.Context, Query) ([]ExistingDailyProgressRecord, error)
}

type ProfileRepo interface {
	UpsertProfile(ctx context.Context, id UserID, p ProfileRecord) (ExistingProfileRecord, error)
	GetProfile(ctx context.Context, id UserID) (ExistingProfileRecord, error)
}

// UserProvider resolves the identity the current session acts as.
type UserProvider interface {
	CurrentUser(context.Context) (UserID, bool)
}

// StaticUser is a UserProvider fixed to one configured identity.
type StaticUser UserID

func (u StaticUser) CurrentUser(context.Context) (UserID, bool) {
	return UserID(u), u != ""
}
