package database

import (
	"context"
	"database/sql"

	"github.com/mbolis/survey-box/log"
	"github.com/mbolis/survey-box/model"
)

type ResponseStore interface {
	Insert(ctx context.Context, q1, q2 string) (int64, error)
	ListAll(ctx context.Context) ([]model.Response, error)
}

type Responses struct {
	db *sql.DB
}

func NewResponses(db *sql.DB) *Responses {
	return &Responses{db}
}

func (s *Responses) Insert(ctx context.Context, q1, q2 string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO responses (q1, q2) VALUES (?, ?)`,
		q1,
		q2,
	)
	if err != nil {
		return 0, &Error{Op: "insert_response", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &Error{Op: "insert_response.id", Err: err}
	}
	log.Debugf("db.insert_response: id=%d", id)
	return id, nil
}

// ListAll returns every stored response in the order SQLite yields them.
func (s *Responses) ListAll(ctx context.Context) ([]model.Response, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, q1, q2, created_at
		FROM responses`)
	if err != nil {
		return nil, &Error{Op: "list_responses", Err: err}
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		r := model.Response{}
		err = rows.Scan(&r.ID, &r.Q1, &r.Q2, &r.CreatedAt)
		if err != nil {
			return nil, &Error{Op: "list_responses.scan", Err: err}
		}
		responses = append(responses, r)
	}
	if err = rows.Err(); err != nil {
		return nil, &Error{Op: "list_responses", Err: err}
	}

	return responses, nil
}
