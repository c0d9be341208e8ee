package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/mbolis/survey-box/session"
)

// Sessions is a session.Store that survives restarts.
type Sessions struct {
	db *sql.DB
}

func NewSessions(db *sql.DB) *Sessions {
	return &Sessions{db}
}

func (s *Sessions) Get(ctx context.Context, token string) (session.Flags, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT flag FROM session
		WHERE token = ?`,
		token,
	)
	if err != nil {
		return nil, &Error{Op: "get_session", Err: err}
	}
	defer rows.Close()

	flags := session.Flags{}
	for rows.Next() {
		var flag string
		if err = rows.Scan(&flag); err != nil {
			return nil, &Error{Op: "get_session.scan", Err: err}
		}
		flags[flag] = true
	}
	if err = rows.Err(); err != nil {
		return nil, &Error{Op: "get_session", Err: err}
	}
	return flags, nil
}

func (s *Sessions) Set(ctx context.Context, token string, flag string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO session (token, flag) VALUES (?, ?)`,
		token,
		flag,
	)
	if err != nil {
		return &Error{Op: "set_session", Err: err}
	}
	return nil
}

func (s *Sessions) Clear(ctx context.Context, token string, flag string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM session
		WHERE token = ?
			AND flag = ?`,
		token,
		flag,
	)
	if err != nil {
		return &Error{Op: "clear_session", Err: err}
	}
	return nil
}

func (s *Sessions) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM session WHERE token = ?`,
		token,
	)
	if err != nil {
		return &Error{Op: "delete_session", Err: err}
	}
	return nil
}

// Sweep deletes sessions created before the given time.
func (s *Sessions) Sweep(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM session
		WHERE token IN (
			SELECT token FROM session
			GROUP BY token
			HAVING MIN(created_at) < ?
		)`,
		before.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, &Error{Op: "sweep_sessions", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &Error{Op: "sweep_sessions.count", Err: err}
	}
	return n, nil
}
