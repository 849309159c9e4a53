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

var tickets = newTable("tickets",
	"id", "user_id", "ticket_number", "title", "description", "status", "priority",
	"date_submitted", "date_resolved", "created_at", "updated_at",
).with(timestampColumn, "date_submitted", "date_resolved", "created_at", "updated_at")

type ticketEntity struct {
	ID            string
	UserID        string
	TicketNumber  string
	Title         string
	Description   string
	Status        string
	Priority      string
	DateSubmitted int64
	DateResolved  sql.NullInt64
	CreatedAt     int64
	UpdatedAt     int64
}

func (e *ticketEntity) args() []any {
	return []any{
		e.ID,
		e.UserID,
		e.TicketNumber,
		e.Title,
		e.Description,
		e.Status,
		e.Priority,
		e.DateSubmitted,
		e.DateResolved,
		e.CreatedAt,
		e.UpdatedAt,
	}
}

type ticketRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewTicketRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *ticketRepo {
	return &ticketRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *ticketRepo) InsertTicket(ctx context.Context, t worklog.TicketRecord) (worklog.ExistingTicketRecord, error) {
	existing := worklog.ExistingTicketRecord{
		TicketRecord:   t,
		ExistingRecord: worklog.NewExistingRecord[worklog.TicketID](uuid.NewString()),
	}
	e := mapToTicketEntity(existing)

	query := tickets.insert()
	args := e.args()
	r.l.Debug("creating ticket", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return worklog.ExistingTicketRecord{}, err
	}
	return existing, nil
}

func (r *ticketRepo) UpdateTicket(ctx context.Context, id worklog.TicketID, t worklog.TicketRecord) (worklog.ExistingTicketRecord, error) {
	existing, err := r.GetTicket(ctx, id)
	if err != nil {
		return existing, err
	}

	existing.TicketRecord = t
	existing.UpdatedAt = time.Now()
	e := mapToTicketEntity(existing)

	query := tickets.update()
	args := tickets.updateArgs(e.args())
	r.l.Debug("updating ticket", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return worklog.ExistingTicketRecord{}, err
	}
	return existing, nil
}

func (r *ticketRepo) GetTicket(ctx context.Context, id worklog.TicketID) (worklog.ExistingTicketRecord, error) {
	if id == "" {
		return worklog.ExistingTicketRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(ctx, tickets.selectAll()+" WHERE id = ?", id)
	return extractTicket(row)
}

func (r *ticketRepo) ListTickets(ctx context.Context, q worklog.Query) ([]worklog.ExistingTicketRecord, error) {
	query, args, err := tickets.selectQuery(q)
	if err != nil {
		return nil, err
	}
	r.l.Debug("listing tickets", "query", query, "args", args)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var res []worklog.ExistingTicketRecord
	for rows.Next() {
		t, err := extractTicket(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func extractTicket(s Scannable) (worklog.ExistingTicketRecord, error) {
	var e ticketEntity
	if err := s.Scan(&e.ID, &e.UserID, &e.TicketNumber, &e.Title, &e.Description, &e.Status, &e.Priority, &e.DateSubmitted, &e.DateResolved, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worklog.ExistingTicketRecord{}, ErrNotFound
		}
		return worklog.ExistingTicketRecord{}, err
	}
	return mapToExistingTicketRecord(e), nil
}

func mapToTicketEntity(t worklog.ExistingTicketRecord) ticketEntity {
	e := ticketEntity{
		ID:            string(t.ID),
		UserID:        string(t.UserID),
		TicketNumber:  t.Number,
		Title:         t.Title,
		Description:   t.Description,
		Status:        string(t.Status),
		Priority:      string(t.Priority),
		DateSubmitted: t.DateSubmitted.Unix(),
		CreatedAt:     t.CreatedAt.Unix(),
		UpdatedAt:     t.UpdatedAt.Unix(),
	}
	if t.DateResolved != nil {
		e.DateResolved = sql.NullInt64{Int64: t.DateResolved.Unix(), Valid: true}
	}
	return e
}

func mapToExistingTicketRecord(e ticketEntity) worklog.ExistingTicketRecord {
	t := worklog.ExistingTicketRecord{
		ExistingRecord: worklog.ExistingRecord[worklog.TicketID]{
			ID:        worklog.TicketID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		TicketRecord: worklog.TicketRecord{
			UserID:        worklog.UserID(e.UserID),
			Number:        e.TicketNumber,
			Title:         e.Title,
			Description:   e.Description,
			Status:        worklog.TicketStatus(e.Status),
			Priority:      worklog.TicketPriority(e.Priority),
			DateSubmitted: time.Unix(e.DateSubmitted, 0),
		},
	}
	if e.DateResolved.Valid {
		resolved := time.Unix(e.DateResolved.Int64, 0)
		t.DateResolved = &resolved
	}
	return t
}
