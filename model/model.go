package model

import "time"

type Response struct {
	ID        int64     `json:"id"`
	Q1        string    `json:"q1"`
	Q2        string    `json:"q2"`
	CreatedAt time.Time `json:"created_at"`
}
