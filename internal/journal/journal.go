// Package journal records the dispatches of one session in sqlite so the UI
// can show what changed the page and in which order. It is a trace, not a
// save file: nothing is ever read back into the store.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jask/panesync/internal/state"
)

// Entry is one recorded dispatch.
type Entry struct {
	ID      string
	Session string
	Seq     int64
	Action  string
	Slice   string
	Payload string
	At      time.Time
}

func (e Entry) String() string {
	return fmt.Sprintf("#%d %s(%s)", e.Seq, e.Action, e.Payload)
}

type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the journal at path (MemoryPath for an in-process journal) and
// applies migrations.
func Open(path string) (*Journal, error) {
	if path == "" {
		path = MemoryPath
	}
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Journal{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// NewSession returns a fresh session id.
func NewSession() string {
	return uuid.NewString()
}

// Append stores a and assigns it the next sequence number in session.
func (j *Journal) Append(ctx context.Context, session string, a state.Action) (Entry, error) {
	e := Entry{
		ID:      uuid.NewString(),
		Session: session,
		Action:  string(a.Type),
		Slice:   a.Slice(),
		Payload: a.Payload(),
		At:      j.now().Truncate(time.Millisecond),
	}
	row := j.db.QueryRowContext(ctx, `
	INSERT INTO entries(id, session_id, seq, action, slice, payload, created_at)
	SELECT ?, ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?
	FROM entries WHERE session_id = ?
	RETURNING seq;
	`, e.ID, e.Session, e.Action, e.Slice, e.Payload, e.At, e.Session)
	if err := row.Scan(&e.Seq); err != nil {
		return Entry{}, fmt.Errorf("append %s: %w", a.Type, err)
	}
	return e, nil
}

// Recent returns up to n entries of session, newest first.
func (j *Journal) Recent(ctx context.Context, session string, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx, `
	SELECT id, session_id, seq, action, slice, payload, created_at
	FROM entries WHERE session_id = ?
	ORDER BY seq DESC LIMIT ?`, session, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Session, &e.Seq, &e.Action, &e.Slice, &e.Payload, &e.At); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of entries recorded for session.
func (j *Journal) Count(ctx context.Context, session string) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE session_id = ?`, session).Scan(&n)
	return n, err
}

// Recorder returns a store listener that appends every change to session.
// Failures go to onErr; the state change itself stands.
func (j *Journal) Recorder(ctx context.Context, session string, onErr func(error)) state.Listener {
	return func(c state.Change) {
		if _, err := j.Append(ctx, session, c.Action); err != nil && onErr != nil {
			onErr(err)
		}
	}
}
