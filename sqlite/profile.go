package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/worklog-go"
)

var profiles = newTable("profiles",
	"id", "first_name", "last_name", "avatar_url", "email", "created_at", "updated_at",
).with(timestampColumn, "created_at", "updated_at")

type profileEntity struct {
	ID        string
	FirstName string
	LastName  string
	AvatarURL string
	Email     string
	CreatedAt int64
	UpdatedAt int64
}

type profileRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewProfileRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *profileRepo {
	return &profileRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

// UpsertProfile inserts the profile for id or overwrites its editable fields.
func (r *profileRepo) UpsertProfile(ctx context.Context, id worklog.UserID, p worklog.ProfileRecord) (worklog.ExistingProfileRecord, error) {
	if id == "" {
		return worklog.ExistingProfileRecord{}, fmt.Errorf("provide id")
	}

	now := time.Now()
	args := []any{string(id), p.FirstName, p.LastName, p.AvatarURL, p.Email, now.Unix(), now.Unix()}
	query := profiles.insert() + " ON CONFLICT (id) DO UPDATE SET first_name = excluded.first_name, last_name = excluded.last_name, avatar_url = excluded.avatar_url, email = excluded.email, updated_at = excluded.updated_at"
	r.l.Debug("upserting profile", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return worklog.ExistingProfileRecord{}, err
	}
	return r.GetProfile(ctx, id)
}

func (r *profileRepo) GetProfile(ctx context.Context, id worklog.UserID) (worklog.ExistingProfileRecord, error) {
	if id == "" {
		return worklog.ExistingProfileRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(ctx, profiles.selectAll()+" WHERE id = ?", string(id))
	var e profileEntity
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.AvatarURL, &e.Email, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worklog.ExistingProfileRecord{}, ErrNotFound
		}
		return worklog.ExistingProfileRecord{}, err
	}
	return worklog.ExistingProfileRecord{
		ExistingRecord: worklog.ExistingRecord[worklog.UserID]{
			ID:        worklog.UserID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		ProfileRecord: worklog.ProfileRecord{
			FirstName: e.FirstName,
			LastName:  e.LastName,
			AvatarURL: e.AvatarURL,
			Email:     e.Email,
		},
	}, nil
}
