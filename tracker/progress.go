package tracker

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/benjamonnguyen/worklog-go"
)

type ProgressEntry struct {
	Date           time.Time // zero means today
	TasksCompleted int
	HoursWorked    float64
	Notes          string
	Mood           worklog.Mood
}

type ProgressSort string

const (
	SortRecent    ProgressSort = "recent"
	SortOldest    ProgressSort = "oldest"
	SortMostTasks ProgressSort = "mostTasks"
)

type ProgressFilter struct {
	Search string
	Mood   string
	Sort   ProgressSort
}

// LogProgress records entry as uid's progress for its day, replacing any entry
// already logged for that day.
func (s *Service) LogProgress(ctx context.Context, uid worklog.UserID, entry ProgressEntry) (worklog.ExistingDailyProgressRecord, error) {
	if entry.TasksCompleted < 0 {
		return worklog.ExistingDailyProgressRecord{}, worklog.InvalidField("tasks_completed", "must not be negative")
	}
	if entry.HoursWorked < 0 {
		return worklog.ExistingDailyProgressRecord{}, worklog.InvalidField("hours_worked", "must not be negative")
	}
	mood := entry.Mood
	if mood == "" {
		mood = worklog.MoodGood
	}
	if !mood.Valid() {
		return worklog.ExistingDailyProgressRecord{}, worklog.InvalidField("mood", fmt.Sprintf("%q is not one of great, good, neutral, tired, stressed", mood))
	}
	date := entry.Date
	if date.IsZero() {
		date = s.now()
	}
	rec := worklog.DailyProgressRecord{
		UserID:         uid,
		ProgressDate:   worklog.Date(date),
		TasksCompleted: entry.TasksCompleted,
		HoursWorked:    entry.HoursWorked,
		Notes:          strings.TrimSpace(entry.Notes),
		Mood:           mood,
	}

	var res worklog.ExistingDailyProgressRecord
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.progress.ListProgress(ctx, worklog.ByUser(uid).Where("progress_date", rec.ProgressDate).Take(1))
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			res, err = s.progress.InsertProgress(ctx, rec)
			return err
		}
		res, err = s.progress.UpdateProgress(ctx, existing[0].ID, rec)
		return err
	})
	if err != nil {
		return worklog.ExistingDailyProgressRecord{}, fmt.Errorf("failed to log progress: %w", err)
	}
	s.l.Info("logged progress", "date", rec.ProgressDate.Format(worklog.DateLayout), "tasks", rec.TasksCompleted)
	return res, nil
}

// TodayProgress returns uid's entry for the current day, if any.
func (s *Service) TodayProgress(ctx context.Context, uid worklog.UserID) (worklog.ExistingDailyProgressRecord, bool, error) {
	q := worklog.ByUser(uid).Where("progress_date", worklog.Date(s.now())).Take(1)
	existing, err := s.progress.ListProgress(ctx, q)
	if err != nil {
		return worklog.ExistingDailyProgressRecord{}, false, fmt.Errorf("failed to get today's progress: %w", err)
	}
	if len(existing) == 0 {
		return worklog.ExistingDailyProgressRecord{}, false, nil
	}
	return existing[0], true, nil
}

func (s *Service) GetProgress(ctx context.Context, uid worklog.UserID, id worklog.ProgressID) (worklog.ExistingDailyProgressRecord, error) {
	p, err := s.progress.GetProgress(ctx, id)
	if err != nil {
		return worklog.ExistingDailyProgressRecord{}, fmt.Errorf("failed to get progress %s: %w", id, err)
	}
	if p.UserID != uid {
		return worklog.ExistingDailyProgressRecord{}, fmt.Errorf("failed to get progress %s: %w", id, worklog.ErrNotFound)
	}
	return p, nil
}

// ListProgress returns uid's entries narrowed by f and ordered by f.Sort.
func (s *Service) ListProgress(ctx context.Context, uid worklog.UserID, f ProgressFilter) (Listing[worklog.ExistingDailyProgressRecord], error) {
	switch f.Sort {
	case "", SortRecent, SortOldest, SortMostTasks:
	default:
		return Listing[worklog.ExistingDailyProgressRecord]{}, worklog.InvalidField("sort", fmt.Sprintf("%q is not one of recent, oldest, mostTasks", f.Sort))
	}

	all, err := s.progress.ListProgress(ctx, worklog.ByUser(uid).Order("progress_date", false))
	if err != nil {
		return Listing[worklog.ExistingDailyProgressRecord]{}, fmt.Errorf("failed to list progress: %w", err)
	}

	res := Listing[worklog.ExistingDailyProgressRecord]{Total: len(all)}
	for _, p := range all {
		if !matchesOption(f.Mood, string(p.Mood)) || !containsFold(f.Search, p.Notes) {
			continue
		}
		res.Items = append(res.Items, p)
	}

	slices.SortStableFunc(res.Items, func(a, b worklog.ExistingDailyProgressRecord) int {
		switch f.Sort {
		case SortOldest:
			return a.ProgressDate.Compare(b.ProgressDate)
		case SortMostTasks:
			return b.TasksCompleted - a.TasksCompleted
		default:
			return b.ProgressDate.Compare(a.ProgressDate)
		}
	})
	return res, nil
}
