package tracker

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/benjamonnguyen/worklog-go"
)

// Profile returns uid's profile. A user who never saved one gets an empty
// profile rather than ErrNotFound.
func (s *Service) Profile(ctx context.Context, uid worklog.UserID) (worklog.ExistingProfileRecord, error) {
	p, err := s.profiles.GetProfile(ctx, uid)
	if errors.Is(err, worklog.ErrNotFound) {
		return worklog.ExistingProfileRecord{
			ExistingRecord: worklog.ExistingRecord[worklog.UserID]{ID: uid},
		}, nil
	}
	if err != nil {
		return worklog.ExistingProfileRecord{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (s *Service) SetProfile(ctx context.Context, uid worklog.UserID, p worklog.ProfileRecord) (worklog.ExistingProfileRecord, error) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.AvatarURL = strings.TrimSpace(p.AvatarURL)
	p.Email = strings.TrimSpace(p.Email)
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return worklog.ExistingProfileRecord{}, worklog.InvalidField("email", fmt.Sprintf("%q is not an address", p.Email))
		}
	}

	res, err := s.profiles.UpsertProfile(ctx, uid, p)
	if err != nil {
		return worklog.ExistingProfileRecord{}, fmt.Errorf("failed to save profile: %w", err)
	}
	s.l.Info("saved profile", "id", uid)
	return res, nil
}
