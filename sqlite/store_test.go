package sqlite

import (
	"context"
	"io"
	"testing"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/worklog-go"
)

func newTestDB(t *testing.T) txStdLib.DBGetter {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
	return dbGetter
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	t.Parallel()

	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close() //nolint

	require.NoError(t, RunMigrations(db))
}

func TestTicketRepo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTicketRepo(newTestDB(t), discardLogger())

	submitted := time.Unix(1_700_000_000, 0)
	inserted, err := repo.InsertTicket(ctx, worklog.TicketRecord{
		UserID:        "u1",
		Number:        worklog.TicketNumber(submitted),
		Title:         "Printer on fire",
		Description:   "third floor",
		Status:        worklog.TicketOpen,
		Priority:      worklog.PriorityHigh,
		DateSubmitted: submitted,
	})
	require.NoError(t, err)
	require.NotEmpty(t, inserted.ID)

	got, err := repo.GetTicket(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, "Printer on fire", got.Title)
	assert.Equal(t, worklog.PriorityHigh, got.Priority)
	assert.True(t, submitted.Equal(got.DateSubmitted))
	assert.Nil(t, got.DateResolved)

	resolved := submitted.Add(time.Hour)
	update := got.TicketRecord
	update.Status = worklog.TicketResolved
	update.DateResolved = &resolved
	_, err = repo.UpdateTicket(ctx, inserted.ID, update)
	require.NoError(t, err)

	got, err = repo.GetTicket(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, worklog.TicketResolved, got.Status)
	require.NotNil(t, got.DateResolved)
	assert.True(t, resolved.Equal(*got.DateResolved))

	_, err = repo.GetTicket(ctx, "missing")
	assert.ErrorIs(t, err, worklog.ErrNotFound)
	_, err = repo.UpdateTicket(ctx, "missing", update)
	assert.ErrorIs(t, err, worklog.ErrNotFound)
}

func TestTicketRepo_ListTickets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTicketRepo(newTestDB(t), discardLogger())

	base := time.Unix(1_700_000_000, 0)
	for i, rec := range []struct {
		user   worklog.UserID
		status worklog.TicketStatus
	}{
		{"u1", worklog.TicketOpen},
		{"u1", worklog.TicketResolved},
		{"u1", worklog.TicketOpen},
		{"u2", worklog.TicketOpen},
	} {
		_, err := repo.InsertTicket(ctx, worklog.TicketRecord{
			UserID:        rec.user,
			Title:         "t",
			Status:        rec.status,
			Priority:      worklog.PriorityLow,
			DateSubmitted: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	tests := map[string]struct {
		query   worklog.Query
		wantLen int
		wantErr error
	}{
		"by user": {
			query:   worklog.ByUser("u1"),
			wantLen: 3,
		},
		"by user and typed status": {
			query:   worklog.ByUser("u1").Where("status", worklog.TicketOpen),
			wantLen: 2,
		},
		"limit": {
			query:   worklog.ByUser("u1").Order("date_submitted", false).Take(1),
			wantLen: 1,
		},
		"unresolved": {
			query:   worklog.ByUser("u1").Where("date_resolved", nil),
			wantLen: 3,
		},
		"unknown filter column": {
			query:   worklog.ByUser("u1").Where("nope", 1),
			wantErr: worklog.ErrInvalidInput,
		},
		"unknown order column": {
			query:   worklog.ByUser("u1").Order("nope", true),
			wantErr: worklog.ErrInvalidInput,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := repo.ListTickets(ctx, tt.query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}

	newest, err := repo.ListTickets(ctx, worklog.ByUser("u1").Order("date_submitted", false).Take(1))
	require.NoError(t, err)
	require.Len(t, newest, 1)
	assert.True(t, base.Add(2*time.Minute).Equal(newest[0].DateSubmitted))
}

func TestLearningLogRepo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewLearningLogRepo(newTestDB(t), discardLogger())

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	inserted, err := repo.InsertLearningLog(ctx, worklog.LearningLogRecord{
		UserID:        "u1",
		Title:         "Go generics",
		SkillsLearned: []string{"go", "type params"},
		DurationHours: 1.5,
		LogDate:       day,
		Category:      "programming",
	})
	require.NoError(t, err)

	got, err := repo.GetLearningLog(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "type params"}, got.SkillsLearned)
	assert.Equal(t, 1.5, got.DurationHours)
	assert.True(t, day.Equal(got.LogDate))

	byDate, err := repo.ListLearningLogs(ctx, worklog.ByUser("u1").Where("log_date", day))
	require.NoError(t, err)
	assert.Len(t, byDate, 1)

	update := got.LearningLogRecord
	update.SkillsLearned = nil
	update.Category = "general"
	_, err = repo.UpdateLearningLog(ctx, inserted.ID, update)
	require.NoError(t, err)

	got, err = repo.GetLearningLog(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Empty(t, got.SkillsLearned)
	assert.Equal(t, "general", got.Category)
}

func TestProgressRepo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewDailyProgressRepo(newTestDB(t), discardLogger())

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	rec := worklog.DailyProgressRecord{
		UserID:         "u1",
		ProgressDate:   day,
		TasksCompleted: 4,
		HoursWorked:    6.5,
		Mood:           worklog.MoodGood,
	}
	inserted, err := repo.InsertProgress(ctx, rec)
	require.NoError(t, err)

	// one entry per user and day
	_, err = repo.InsertProgress(ctx, rec)
	assert.Error(t, err)

	rec.TasksCompleted = 7
	rec.Mood = worklog.MoodTired
	_, err = repo.UpdateProgress(ctx, inserted.ID, rec)
	require.NoError(t, err)

	list, err := repo.ListProgress(ctx, worklog.ByUser("u1").Where("progress_date", day))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 7, list[0].TasksCompleted)
	assert.Equal(t, worklog.MoodTired, list[0].Mood)
	assert.True(t, day.Equal(list[0].ProgressDate))
}

func TestProfileRepo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewProfileRepo(newTestDB(t), discardLogger())

	_, err := repo.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, worklog.ErrNotFound)

	p, err := repo.UpsertProfile(ctx, "u1", worklog.ProfileRecord{FirstName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.DisplayName())

	p, err = repo.UpsertProfile(ctx, "u1", worklog.ProfileRecord{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.DisplayName())
	assert.Equal(t, worklog.UserID("u1"), p.ID)
}

func TestSelectQuery(t *testing.T) {
	t.Parallel()

	q, args, err := dailyProgress.selectQuery(worklog.Query{
		Filter:  worklog.Filter{"user_id": "u1", "mood": worklog.MoodGreat},
		OrderBy: "progress_date",
		Limit:   7,
	})
	require.NoError(t, err)
	assert.Equal(t, dailyProgress.selectAll()+" WHERE mood = ? AND user_id = ? ORDER BY progress_date DESC LIMIT ?", q)
	assert.Equal(t, []any{"great", "u1", 7}, args)

	_, _, err = dailyProgress.selectQuery(worklog.Query{Limit: -1})
	assert.ErrorIs(t, err, worklog.ErrInvalidInput)
}

func TestGenerateParameters(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "()", GenerateParameters(0))
	assert.Equal(t, "(?)", GenerateParameters(1))
	assert.Equal(t, "(?, ?, ?)", GenerateParameters(3))
}
