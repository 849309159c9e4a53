package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/benjamonnguyen/worklog-go"
)

type NewTicket struct {
	Title       string
	Description string
	Priority    worklog.TicketPriority
}

// TicketUpdate holds the fields to change. Nil fields are left as they are.
type TicketUpdate struct {
	Title       *string
	Description *string
	Status      *worklog.TicketStatus
	Priority    *worklog.TicketPriority
}

type TicketFilter struct {
	Search   string
	Status   string
	Priority string
}

func (s *Service) CreateTicket(ctx context.Context, uid worklog.UserID, in NewTicket) (worklog.ExistingTicketRecord, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return worklog.ExistingTicketRecord{}, worklog.InvalidField("title", "is required")
	}
	priority := in.Priority
	if priority == "" {
		priority = worklog.PriorityMedium
	}
	if !priority.Valid() {
		return worklog.ExistingTicketRecord{}, worklog.InvalidField("priority", fmt.Sprintf("%q is not one of low, medium, high", priority))
	}

	now := s.now()
	t, err := s.tickets.InsertTicket(ctx, worklog.TicketRecord{
		UserID:        uid,
		Number:        worklog.TicketNumber(now),
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Status:        worklog.TicketOpen,
		Priority:      priority,
		DateSubmitted: now,
	})
	if err != nil {
		return worklog.ExistingTicketRecord{}, fmt.Errorf("failed to create ticket: %w", err)
	}
	s.l.Info("created ticket", "id", t.ID, "number", t.Number)
	return t, nil
}

func (s *Service) UpdateTicket(ctx context.Context, uid worklog.UserID, id worklog.TicketID, in TicketUpdate) (worklog.ExistingTicketRecord, error) {
	var updated worklog.ExistingTicketRecord
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.GetTicket(ctx, uid, id)
		if err != nil {
			return err
		}

		rec := existing.TicketRecord
		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return worklog.InvalidField("title", "is required")
			}
			rec.Title = title
		}
		if in.Description != nil {
			rec.Description = strings.TrimSpace(*in.Description)
		}
		if in.Priority != nil {
			if !in.Priority.Valid() {
				return worklog.InvalidField("priority", fmt.Sprintf("%q is not one of low, medium, high", *in.Priority))
			}
			rec.Priority = *in.Priority
		}
		if in.Status != nil {
			if !in.Status.Valid() {
				return worklog.InvalidField("status", fmt.Sprintf("%q is not one of open, in-progress, resolved, closed", *in.Status))
			}
			rec.Status = *in.Status
			if rec.Status == worklog.TicketResolved {
				now := s.now()
				rec.DateResolved = &now
			} else {
				rec.DateResolved = nil
			}
		}

		updated, err = s.tickets.UpdateTicket(ctx, id, rec)
		if err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		return worklog.ExistingTicketRecord{}, err
	}
	s.l.Info("updated ticket", "id", id, "status", updated.Status)
	return updated, nil
}

// GetTicket returns the ticket if uid owns it and ErrNotFound otherwise.
func (s *Service) GetTicket(ctx context.Context, uid worklog.UserID, id worklog.TicketID) (worklog.ExistingTicketRecord, error) {
	t, err := s.tickets.GetTicket(ctx, id)
	if err != nil {
		return worklog.ExistingTicketRecord{}, fmt.Errorf("failed to get ticket %s: %w", id, err)
	}
	if t.UserID != uid {
		return worklog.ExistingTicketRecord{}, fmt.Errorf("failed to get ticket %s: %w", id, worklog.ErrNotFound)
	}
	return t, nil
}

// ListTickets returns uid's tickets newest first, narrowed by f.
func (s *Service) ListTickets(ctx context.Context, uid worklog.UserID, f TicketFilter) (Listing[worklog.ExistingTicketRecord], error) {
	all, err := s.tickets.ListTickets(ctx, worklog.ByUser(uid).Order("date_submitted", false))
	if err != nil {
		return Listing[worklog.ExistingTicketRecord]{}, fmt.Errorf("failed to list tickets: %w", err)
	}

	res := Listing[worklog.ExistingTicketRecord]{Total: len(all)}
	for _, t := range all {
		if !matchesOption(f.Status, string(t.Status)) || !matchesOption(f.Priority, string(t.Priority)) {
			continue
		}
		if !containsFold(f.Search, t.Title, t.Number, t.Description) {
			continue
		}
		res.Items = append(res.Items, t)
	}
	return res, nil
}

// matchesOption treats "" and "all" as no constraint.
func matchesOption(want, got string) bool {
	if want == "" || strings.EqualFold(want, "all") {
		return true
	}
	return strings.EqualFold(want, got)
}

// containsFold reports whether any field contains term, ignoring case.
func containsFold(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
