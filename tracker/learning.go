package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/benjamonnguyen/worklog-go"
)

const DefaultCategory = "general"

type NewLearningLog struct {
	Title         string
	Description   string
	Skills        string // comma separated
	DurationHours float64
	LogDate       time.Time // zero means today
	Category      string
}

type LearningFilter struct {
	Search   string
	Category string
}

func (s *Service) CreateLearningLog(ctx context.Context, uid worklog.UserID, in NewLearningLog) (worklog.ExistingLearningLogRecord, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return worklog.ExistingLearningLogRecord{}, worklog.InvalidField("title", "is required")
	}
	if in.DurationHours < 0 {
		return worklog.ExistingLearningLogRecord{}, worklog.InvalidField("duration_hours", "must not be negative")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}
	logDate := in.LogDate
	if logDate.IsZero() {
		logDate = s.now()
	}

	l, err := s.learning.InsertLearningLog(ctx, worklog.LearningLogRecord{
		UserID:        uid,
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		SkillsLearned: worklog.ParseSkills(in.Skills),
		DurationHours: in.DurationHours,
		LogDate:       worklog.Date(logDate),
		Category:      category,
	})
	if err != nil {
		return worklog.ExistingLearningLogRecord{}, fmt.Errorf("failed to create learning log: %w", err)
	}
	s.l.Info("created learning log", "id", l.ID, "hours", l.DurationHours)
	return l, nil
}

func (s *Service) GetLearningLog(ctx context.Context, uid worklog.UserID, id worklog.LearningLogID) (worklog.ExistingLearningLogRecord, error) {
	l, err := s.learning.GetLearningLog(ctx, id)
	if err != nil {
		return worklog.ExistingLearningLogRecord{}, fmt.Errorf("failed to get learning log %s: %w", id, err)
	}
	if l.UserID != uid {
		return worklog.ExistingLearningLogRecord{}, fmt.Errorf("failed to get learning log %s: %w", id, worklog.ErrNotFound)
	}
	return l, nil
}

// ListLearningLogs returns uid's logs newest first, narrowed by f.
func (s *Service) ListLearningLogs(ctx context.Context, uid worklog.UserID, f LearningFilter) (Listing[worklog.ExistingLearningLogRecord], error) {
	all, err := s.learning.ListLearningLogs(ctx, worklog.ByUser(uid).Order("log_date", false))
	if err != nil {
		return Listing[worklog.ExistingLearningLogRecord]{}, fmt.Errorf("failed to list learning logs: %w", err)
	}

	res := Listing[worklog.ExistingLearningLogRecord]{Total: len(all)}
	for _, l := range all {
		if !matchesOption(f.Category, l.Category) {
			continue
		}
		fields := append([]string{l.Title, l.Description}, l.SkillsLearned...)
		if !containsFold(f.Search, fields...) {
			continue
		}
		res.Items = append(res.Items, l)
	}
	return res, nil
}
