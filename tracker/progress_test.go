package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/worklog-go"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_LogProgress(t *testing.T) {
	t.Parallel()

	t.Run("inserts when the day is empty", func(t *testing.T) {
		t.Parallel()

		var (
			gotQuery worklog.Query
			inserted worklog.DailyProgressRecord
		)
		repo := &mockProgressRepo{
			listFunc: func(ctx context.Context, q worklog.Query) ([]worklog.ExistingDailyProgressRecord, error) {
				gotQuery = q
				return nil, nil
			},
			insertFunc: func(ctx context.Context, p worklog.DailyProgressRecord) (worklog.ExistingDailyProgressRecord, error) {
				inserted = p
				return worklog.ExistingDailyProgressRecord{DailyProgressRecord: p}, nil
			},
			updateFunc: func(context.Context, worklog.ProgressID, worklog.DailyProgressRecord) (worklog.ExistingDailyProgressRecord, error) {
				t.Error("unexpected update")
				return worklog.ExistingDailyProgressRecord{}, nil
			},
		}
		tx := &mockTransactor{}
		s := newTestService(Repos{Progress: repo}, tx, WithClock(fixedClock))

		_, err := s.LogProgress(context.Background(), "u1", ProgressEntry{TasksCompleted: 3, HoursWorked: 7.5})
		require.NoError(t, err)
		assert.Equal(t, 1, tx.calls)
		assert.Equal(t, day(2024, 3, 9), inserted.ProgressDate)
		assert.Equal(t, worklog.MoodGood, inserted.Mood)
		assert.Equal(t, day(2024, 3, 9), gotQuery.Filter["progress_date"])
		assert.Equal(t, 1, gotQuery.Limit)
	})

	t.Run("updates the existing entry", func(t *testing.T) {
		t.Parallel()

		var updatedID worklog.ProgressID
		repo := &mockProgressRepo{
			listFunc: func(context.Context, worklog.Query) ([]worklog.ExistingDailyProgressRecord, error) {
				return []worklog.ExistingDailyProgressRecord{
					{ExistingRecord: worklog.ExistingRecord[worklog.ProgressID]{ID: "p1"}},
				}, nil
			},
			insertFunc: func(context.Context, worklog.DailyProgressRecord) (worklog.ExistingDailyProgressRecord, error) {
				t.Error("unexpected insert")
				return worklog.ExistingDailyProgressRecord{}, nil
			},
			updateFunc: func(ctx context.Context, id worklog.ProgressID, p worklog.DailyProgressRecord) (worklog.ExistingDailyProgressRecord, error) {
				updatedID = id
				return worklog.ExistingDailyProgressRecord{DailyProgressRecord: p}, nil
			},
		}
		s := newTestService(Repos{Progress: repo}, nil, WithClock(fixedClock))

		got, err := s.LogProgress(context.Background(), "u1", ProgressEntry{
			Date:           day(2024, 3, 1),
			TasksCompleted: 5,
			Mood:           worklog.MoodTired,
		})
		require.NoError(t, err)
		assert.Equal(t, worklog.ProgressID("p1"), updatedID)
		assert.Equal(t, worklog.MoodTired, got.Mood)
		assert.Equal(t, day(2024, 3, 1), got.ProgressDate)
	})

	t.Run("transaction error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("locked")
		tx := &mockTransactor{
			withinTransactionFunc: func(context.Context, func(context.Context) error) error {
				return boom
			},
		}
		s := newTestService(Repos{}, tx)

		_, err := s.LogProgress(context.Background(), "u1", ProgressEntry{})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		s := newTestService(Repos{}, nil)
		tests := map[string]ProgressEntry{
			"negative tasks": {TasksCompleted: -1},
			"negative hours": {HoursWorked: -0.5},
			"unknown mood":   {Mood: "ecstatic"},
		}
		for name, in := range tests {
			_, err := s.LogProgress(context.Background(), "u1", in)
			assert.ErrorIs(t, err, worklog.ErrInvalidInput, name)
		}
	})
}

func TestService_ListProgress(t *testing.T) {
	t.Parallel()

	records := []worklog.ExistingDailyProgressRecord{
		{DailyProgressRecord: worklog.DailyProgressRecord{ProgressDate: day(2024, 3, 9), TasksCompleted: 2, Notes: "Deploy day", Mood: worklog.MoodStressed}},
		{DailyProgressRecord: worklog.DailyProgressRecord{ProgressDate: day(2024, 3, 8), TasksCompleted: 9, Notes: "refactor", Mood: worklog.MoodGreat}},
		{DailyProgressRecord: worklog.DailyProgressRecord{ProgressDate: day(2024, 3, 7), TasksCompleted: 4, Notes: "deploy prep", Mood: worklog.MoodGood}},
	}
	repo := &mockProgressRepo{
		listFunc: func(context.Context, worklog.Query) ([]worklog.ExistingDailyProgressRecord, error) {
			return records, nil
		},
	}
	s := newTestService(Repos{Progress: repo}, nil)

	tests := map[string]struct {
		filter  ProgressFilter
		want    []int
		wantErr bool
	}{
		"default recent": {filter: ProgressFilter{}, want: []int{2, 9, 4}},
		"oldest":         {filter: ProgressFilter{Sort: SortOldest}, want: []int{4, 9, 2}},
		"most tasks":     {filter: ProgressFilter{Sort: SortMostTasks}, want: []int{9, 4, 2}},
		"search notes":   {filter: ProgressFilter{Search: "deploy"}, want: []int{2, 4}},
		"mood":           {filter: ProgressFilter{Mood: "great"}, want: []int{9}},
		"bad sort":       {filter: ProgressFilter{Sort: "alphabetical"}, wantErr: true},
	}
	for name, tt := range tests {
		got, err := s.ListProgress(context.Background(), "u1", tt.filter)
		if tt.wantErr {
			assert.ErrorIs(t, err, worklog.ErrInvalidInput, name)
			continue
		}
		require.NoError(t, err, name)
		var tasks []int
		for _, p := range got.Items {
			tasks = append(tasks, p.TasksCompleted)
		}
		assert.Equal(t, tt.want, tasks, name)
		assert.Equal(t, 3, got.Total, name)
	}
}

func TestService_TodayProgress(t *testing.T) {
	t.Parallel()

	repo := &mockProgressRepo{
		listFunc: func(ctx context.Context, q worklog.Query) ([]worklog.ExistingDailyProgressRecord, error) {
			if q.Filter["progress_date"] == day(2024, 3, 9) {
				return []worklog.ExistingDailyProgressRecord{{DailyProgressRecord: worklog.DailyProgressRecord{TasksCompleted: 1}}}, nil
			}
			return nil, nil
		},
	}
	s := newTestService(Repos{Progress: repo}, nil, WithClock(fixedClock))

	got, ok, err := s.TodayProgress(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, got.TasksCompleted)
}
