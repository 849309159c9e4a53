package worklog

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type (
	UserID        string
	TicketID      string
	LearningLogID string
	ProgressID    string
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodNeutral  Mood = "neutral"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodGreat, MoodGood, MoodNeutral, MoodTired, MoodStressed:
		return true
	}
	return false
}

func (m Mood) Emoji() string {
	switch Mood(strings.ToLower(string(m))) {
	case MoodGreat:
		return "😄"
	case MoodGood:
		return "😊"
	case MoodNeutral:
		return "😐"
	case MoodTired:
		return "😴"
	case MoodStressed:
		return "😰"
	default:
		return "-"
	}
}

type TicketRecord struct {
	UserID        UserID
	Number        string
	Title         string
	Description   string
	Status        TicketStatus
	Priority      TicketPriority
	DateSubmitted time.Time
	DateResolved  *time.Time
}

type ExistingTicketRecord struct {
	ExistingRecord[TicketID]
	TicketRecord
}

// TicketNumber formats the human-facing ticket number from the last six digits
// of the submission time in milliseconds.
func TicketNumber(submitted time.Time) string {
	return fmt.Sprintf("TKT-%06d", submitted.UnixMilli()%1_000_000)
}

type LearningLogRecord struct {
	UserID        UserID
	Title         string
	Description   string
	SkillsLearned []string
	DurationHours float64
	LogDate       time.Time
	Category      string
}

type ExistingLearningLogRecord struct {
	ExistingRecord[LearningLogID]
	LearningLogRecord
}

// ParseSkills splits a comma separated skill list, dropping empty entries.
func ParseSkills(csv string) []string {
	var skills []string
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

type DailyProgressRecord struct {
	UserID         UserID
	ProgressDate   time.Time
	TasksCompleted int
	HoursWorked    float64
	Notes          string
	Mood           Mood
}

type ExistingDailyProgressRecord struct {
	ExistingRecord[ProgressID]
	DailyProgressRecord
}

type ProfileRecord struct {
	FirstName string
	LastName  string
	AvatarURL string
	Email     string
}

type ExistingProfileRecord struct {
	ExistingRecord[UserID]
	ProfileRecord
}

func (p ExistingProfileRecord) DisplayName() string {
	if p.FirstName != "" {
		return strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	if p.Email != "" {
		return p.Email
	}
	return "User"
}

// Date truncates t to its calendar day in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, InvalidField("date", fmt.Sprintf("%q is not YYYY-MM-DD", s))
	}
	return t, nil
}
