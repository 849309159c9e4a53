package tracker

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/benjamonnguyen/worklog-go"
)

const (
	dashboardLearningLimit = 30
	dashboardProgressLimit = 7
	chartDateLayout        = "Jan 2"
)

type ChartPoint struct {
	Label string
	Hours float64
	Tasks int
}

type Slice struct {
	Name  string
	Value float64
}

type Dashboard struct {
	LearningHours   float64
	TasksCompleted  int
	OpenTickets     int
	ResolvedTickets int
	Weekly          []ChartPoint // oldest first
	StatusBreakdown []Slice
}

// Dashboard summarizes uid's recent learning, progress and tickets.
func (s *Service) Dashboard(ctx context.Context, uid worklog.UserID) (Dashboard, error) {
	tickets, err := s.tickets.ListTickets(ctx, worklog.ByUser(uid).Order("date_submitted", false))
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to list tickets: %w", err)
	}
	logs, err := s.learning.ListLearningLogs(ctx, worklog.ByUser(uid).Order("log_date", false).Take(dashboardLearningLimit))
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to list learning logs: %w", err)
	}
	progress, err := s.progress.ListProgress(ctx, worklog.ByUser(uid).Order("progress_date", false).Take(dashboardProgressLimit))
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to list progress: %w", err)
	}

	var d Dashboard
	for _, l := range logs {
		d.LearningHours += l.DurationHours
	}
	for _, p := range progress {
		d.TasksCompleted += p.TasksCompleted
		d.Weekly = append(d.Weekly, ChartPoint{
			Label: p.ProgressDate.Format(chartDateLayout),
			Hours: p.HoursWorked,
			Tasks: p.TasksCompleted,
		})
	}
	slices.Reverse(d.Weekly)
	d.OpenTickets, d.ResolvedTickets = countTickets(tickets)
	d.StatusBreakdown = []Slice{
		{Name: "Open", Value: float64(d.OpenTickets)},
		{Name: "Resolved", Value: float64(d.ResolvedTickets)},
	}
	return d, nil
}

func countTickets(tickets []worklog.ExistingTicketRecord) (open, resolved int) {
	for _, t := range tickets {
		switch t.Status {
		case worklog.TicketOpen:
			open++
		case worklog.TicketResolved:
			resolved++
		}
	}
	return open, resolved
}

type Report struct {
	TotalTickets      int
	OpenTickets       int
	ResolvedTickets   int
	LearningHours     float64
	LearningSessions  int
	TasksCompleted    int
	HoursWorked       float64
	ProgressDays      int
	HoursByCategory   []Slice // first-seen order
	TicketsByPriority []Slice // first-seen order
}

// Report aggregates every record uid owns.
func (s *Service) Report(ctx context.Context, uid worklog.UserID) (Report, error) {
	tickets, err := s.tickets.ListTickets(ctx, worklog.ByUser(uid).Order("date_submitted", false))
	if err != nil {
		return Report{}, fmt.Errorf("failed to list tickets: %w", err)
	}
	logs, err := s.learning.ListLearningLogs(ctx, worklog.ByUser(uid).Order("log_date", false))
	if err != nil {
		return Report{}, fmt.Errorf("failed to list learning logs: %w", err)
	}
	progress, err := s.progress.ListProgress(ctx, worklog.ByUser(uid).Order("progress_date", false))
	if err != nil {
		return Report{}, fmt.Errorf("failed to list progress: %w", err)
	}

	r := Report{
		TotalTickets:     len(tickets),
		LearningSessions: len(logs),
		ProgressDays:     len(progress),
	}
	r.OpenTickets, r.ResolvedTickets = countTickets(tickets)

	var categories breakdown
	for _, l := range logs {
		r.LearningHours += l.DurationHours
		categories.add(l.Category, "Uncategorized", l.DurationHours)
	}
	r.HoursByCategory = categories

	var priorities breakdown
	for _, t := range tickets {
		priorities.add(string(t.Priority), "Unknown", 1)
	}
	r.TicketsByPriority = priorities

	for _, p := range progress {
		r.TasksCompleted += p.TasksCompleted
		r.HoursWorked += p.HoursWorked
	}
	return r, nil
}

type breakdown []Slice

func (b *breakdown) add(name, fallback string, v float64) {
	if name == "" {
		name = fallback
	}
	for i := range *b {
		if (*b)[i].Name == name {
			(*b)[i].Value += v
			return
		}
	}
	*b = append(*b, Slice{Name: name, Value: v})
}

type CalendarCell struct {
	Date  time.Time
	Count int
	Level int
}

type ProgressOverview struct {
	WeekTasks int
	WeekHours float64
	Calendar  []CalendarCell // newest first
}

// ActivityLevel buckets a task count into a 0-4 heatmap intensity.
func ActivityLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count < 3:
		return 1
	case count < 6:
		return 2
	case count < 10:
		return 3
	default:
		return 4
	}
}

// ProgressOverview sums the seven days up to today of uid's progress and maps every
// entry to a calendar cell.
func (s *Service) ProgressOverview(ctx context.Context, uid worklog.UserID) (ProgressOverview, error) {
	progress, err := s.progress.ListProgress(ctx, worklog.ByUser(uid).Order("progress_date", false))
	if err != nil {
		return ProgressOverview{}, fmt.Errorf("failed to list progress: %w", err)
	}

	// the day exactly a week back is outside the window
	weekAgo := worklog.Date(s.now()).AddDate(0, 0, -7)
	var o ProgressOverview
	for _, p := range progress {
		if p.ProgressDate.After(weekAgo) {
			o.WeekTasks += p.TasksCompleted
			o.WeekHours += p.HoursWorked
		}
		o.Calendar = append(o.Calendar, CalendarCell{
			Date:  p.ProgressDate,
			Count: p.TasksCompleted,
			Level: ActivityLevel(p.TasksCompleted),
		})
	}
	return o, nil
}
