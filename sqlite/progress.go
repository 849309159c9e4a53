package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benjamonnguyen/worklog-go"
)

var dailyProgress = newTable("daily_progress",
	"id", "user_id", "progress_date", "tasks_completed", "hours_worked", "notes", "mood",
	"created_at", "updated_at",
).with(dateColumn, "progress_date").with(timestampColumn, "created_at", "updated_at")

type progressEntity struct {
	ID             string
	UserID         string
	ProgressDate   string
	TasksCompleted int
	HoursWorked    float64
	Notes          string
	Mood           string
	CreatedAt      int64
	UpdatedAt      int64
}

func (e *progressEntity) args() []any {
	return []any{
		e.ID,
		e.UserID,
		e.ProgressDate,
		e.TasksCompleted,
		e.HoursWorked,
		e.Notes,
		e.Mood,
		e.CreatedAt,
		e.UpdatedAt,
	}
}

type progressRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewDailyProgressRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *progressRepo {
	return &progressRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *progressRepo) InsertProgress(ctx context.Context, p worklog.DailyProgressRecord) (worklog.ExistingDailyProgressRecord, error) {
	existing := worklog.ExistingDailyProgressRecord{
		DailyProgressRecord: p,
		ExistingRecord:      worklog.NewExistingRecord[worklog.ProgressID](uuid.NewString()),
	}
	e := mapToProgressEntity(existing)

	query := dailyProgress.insert()
	args := e.args()
	r.l.Debug("creating daily progress", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return worklog.ExistingDailyProgressRecord{}, err
	}
	return existing, nil
}

func (r *progressRepo) UpdateProgress(ctx context.Context, id worklog.ProgressID, p worklog.DailyProgressRecord) (worklog.ExistingDailyProgressRecord, error) {
	existing, err := r.GetProgress(ctx, id)
	if err != nil {
		return existing, err
	}

	existing.DailyProgressRecord = p
	existing.UpdatedAt = time.Now()
	e := mapToProgressEntity(existing)

	query := dailyProgress.update()
	args := dailyProgress.updateArgs(e.args())
	r.l.Debug("updating daily progress", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return worklog.ExistingDailyProgressRecord{}, err
	}
	return existing, nil
}

func (r *progressRepo) GetProgress(ctx context.Context, id worklog.ProgressID) (worklog.ExistingDailyProgressRecord, error) {
	if id == "" {
		return worklog.ExistingDailyProgressRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(ctx, dailyProgress.selectAll()+" WHERE id = ?", id)
	return extractProgress(row)
}

func (r *progressRepo) ListProgress(ctx context.Context, q worklog.Query) ([]worklog.ExistingDailyProgressRecord, error) {
	query, args, err := dailyProgress.selectQuery(q)
	if err != nil {
		return nil, err
	}
	r.l.Debug("listing daily progress", "query", query, "args", args)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var res []worklog.ExistingDailyProgressRecord
	for rows.Next() {
		p, err := extractProgress(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func extractProgress(s Scannable) (worklog.ExistingDailyProgressRecord, error) {
	var e progressEntity
	if err := s.Scan(&e.ID, &e.UserID, &e.ProgressDate, &e.TasksCompleted, &e.HoursWorked, &e.Notes, &e.Mood, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worklog.ExistingDailyProgressRecord{}, ErrNotFound
		}
		return worklog.ExistingDailyProgressRecord{}, err
	}
	return mapToExistingProgressRecord(e)
}

func mapToProgressEntity(p worklog.ExistingDailyProgressRecord) progressEntity {
	return progressEntity{
		ID:             string(p.ID),
		UserID:         string(p.UserID),
		ProgressDate:   p.ProgressDate.Format(worklog.DateLayout),
		TasksCompleted: p.TasksCompleted,
		HoursWorked:    p.HoursWorked,
		Notes:          p.Notes,
		Mood:           string(p.Mood),
		CreatedAt:      p.CreatedAt.Unix(),
		UpdatedAt:      p.UpdatedAt.Unix(),
	}
}

func mapToExistingProgressRecord(e progressEntity) (worklog.ExistingDailyProgressRecord, error) {
	date, err := time.Parse(worklog.DateLayout, e.ProgressDate)
	if err != nil {
		return worklog.ExistingDailyProgressRecord{}, fmt.Errorf("failed to parse progress_date of %s: %w", e.ID, err)
	}
	return worklog.ExistingDailyProgressRecord{
		ExistingRecord: worklog.ExistingRecord[worklog.ProgressID]{
			ID:        worklog.ProgressID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		DailyProgressRecord: worklog.DailyProgressRecord{
			UserID:         worklog.UserID(e.UserID),
			ProgressDate:   date,
			TasksCompleted: e.TasksCompleted,
			HoursWorked:    e.HoursWorked,
			Notes:          e.Notes,
			Mood:           worklog.Mood(e.Mood),
		},
	}, nil
}
