package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benjamonnguyen/worklog-go"
)

var learningLogs = newTable("learning_logs",
	"id", "user_id", "title", "description", "skills_learned", "duration_hours",
	"log_date", "category", "created_at", "updated_at",
).with(dateColumn, "log_date").with(timestampColumn, "created_at", "updated_at")

type learningLogEntity struct {
	ID            string
	UserID        string
	Title         string
	Description   string
	SkillsLearned string
	DurationHours float64
	LogDate       string
	Category      string
	CreatedAt     int64
	UpdatedAt     int64
}

func (e *learningLogEntity) args() []any {
	return []any{
		e.ID,
		e.UserID,
		e.Title,
		e.Description,
		e.SkillsLearned,
		e.DurationHours,
		e.LogDate,
		e.Category,
		e.CreatedAt,
		e.UpdatedAt,
	}
}

type learningLogRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewLearningLogRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *learningLogRepo {
	return &learningLogRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *learningLogRepo) InsertLearningLog(ctx context.Context, l worklog.LearningLogRecord) (worklog.ExistingLearningLogRecord, error) {
	existing := worklog.ExistingLearningLogRecord{
		LearningLogRecord: l,
		ExistingRecord:    worklog.NewExistingRecord[worklog.LearningLogID](uuid.NewString()),
	}
	e, err := mapToLearningLogEntity(existing)
	if err != nil {
		return worklog.ExistingLearningLogRecord{}, err
	}

	query := learningLogs.insert()
	args := e.args()
	r.l.Debug("creating learning log", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return worklog.ExistingLearningLogRecord{}, err
	}
	return existing, nil
}

func (r *learningLogRepo) UpdateLearningLog(ctx context.Context, id worklog.LearningLogID, l worklog.LearningLogRecord) (worklog.ExistingLearningLogRecord, error) {
	existing, err := r.GetLearningLog(ctx, id)
	if err != nil {
		return existing, err
	}

	existing.LearningLogRecord = l
	existing.UpdatedAt = time.Now()
	e, err := mapToLearningLogEntity(existing)
	if err != nil {
		return worklog.ExistingLearningLogRecord{}, err
	}

	query := learningLogs.update()
	args := learningLogs.updateArgs(e.args())
	r.l.Debug("updating learning log", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return worklog.ExistingLearningLogRecord{}, err
	}
	return existing, nil
}

func (r *learningLogRepo) GetLearningLog(ctx context.Context, id worklog.LearningLogID) (worklog.ExistingLearningLogRecord, error) {
	if id == "" {
		return worklog.ExistingLearningLogRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(ctx, learningLogs.selectAll()+" WHERE id = ?", id)
	return extractLearningLog(row)
}

func (r *learningLogRepo) ListLearningLogs(ctx context.Context, q worklog.Query) ([]worklog.ExistingLearningLogRecord, error) {
	query, args, err := learningLogs.selectQuery(q)
	if err != nil {
		return nil, err
	}
	r.l.Debug("listing learning logs", "query", query, "args", args)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var res []worklog.ExistingLearningLogRecord
	for rows.Next() {
		l, err := extractLearningLog(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

func extractLearningLog(s Scannable) (worklog.ExistingLearningLogRecord, error) {
	var e learningLogEntity
	if err := s.Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.SkillsLearned, &e.DurationHours, &e.LogDate, &e.Category, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worklog.ExistingLearningLogRecord{}, ErrNotFound
		}
		return worklog.ExistingLearningLogRecord{}, err
	}
	return mapToExistingLearningLogRecord(e)
}

func mapToLearningLogEntity(l worklog.ExistingLearningLogRecord) (learningLogEntity, error) {
	skills := l.SkillsLearned
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return learningLogEntity{}, fmt.Errorf("failed to encode skills: %w", err)
	}
	return learningLogEntity{
		ID:            string(l.ID),
		UserID:        string(l.UserID),
		Title:         l.Title,
		Description:   l.Description,
		SkillsLearned: string(b),
		DurationHours: l.DurationHours,
		LogDate:       l.LogDate.Format(worklog.DateLayout),
		Category:      l.Category,
		CreatedAt:     l.CreatedAt.Unix(),
		UpdatedAt:     l.UpdatedAt.Unix(),
	}, nil
}

func mapToExistingLearningLogRecord(e learningLogEntity) (worklog.ExistingLearningLogRecord, error) {
	var skills []string
	if err := json.Unmarshal([]byte(e.SkillsLearned), &skills); err != nil {
		return worklog.ExistingLearningLogRecord{}, fmt.Errorf("failed to decode skills of learning log %s: %w", e.ID, err)
	}
	logDate, err := time.Parse(worklog.DateLayout, e.LogDate)
	if err != nil {
		return worklog.ExistingLearningLogRecord{}, fmt.Errorf("failed to parse log_date of learning log %s: %w", e.ID, err)
	}
	return worklog.ExistingLearningLogRecord{
		ExistingRecord: worklog.ExistingRecord[worklog.LearningLogID]{
			ID:        worklog.LearningLogID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		LearningLogRecord: worklog.LearningLogRecord{
			UserID:        worklog.UserID(e.UserID),
			Title:         e.Title,
			Description:   e.Description,
			SkillsLearned: skills,
			DurationHours: e.DurationHours,
			LogDate:       logDate,
			Category:      e.Category,
		},
	}, nil
}
