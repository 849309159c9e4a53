// Package tracker implements the ticket, learning and progress workflows on top
// of the worklog repos.
package tracker

import (
	"time"

	"github.com/Thiht/transactor"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/worklog-go"
)

type Repos struct {
	Tickets  worklog.TicketRepo
	Learning worklog.LearningLogRepo
	Progress worklog.DailyProgressRepo
	Profiles worklog.ProfileRepo
}

type Service struct {
	tickets  worklog.TicketRepo
	learning worklog.LearningLogRepo
	progress worklog.DailyProgressRepo
	profiles worklog.ProfileRepo
	tx       transactor.Transactor
	now      func() time.Time
	l        *log.Logger
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repos Repos, tx transactor.Transactor, logger *log.Logger, opts ...Option) *Service {
	s := &Service{
		tickets:  repos.Tickets,
		learning: repos.Learning,
		progress: repos.Progress,
		profiles: repos.Profiles,
		tx:       tx,
		now:      time.Now,
		l:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Listing is a filtered page of records along with the unfiltered count.
type Listing[T any] struct {
	Items []T
	Total int
}
