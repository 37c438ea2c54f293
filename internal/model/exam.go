package model

import (
	"time"

	"github.com/timelazy/timelazy-server/internal/seating"
)

// Exam is a saved seating request. Only the request is stored: the plan is
// regenerated on demand, which always yields the same arrangement.
type Exam struct {
	ID          uint64          `json:"id"`
	AdminID     uint64          `json:"admin_id"`
	Title       string          `json:"title"`
	Institution string          `json:"institution,omitempty"`
	Request     seating.Request `json:"request"`
	CreatedAt   time.Time       `json:"created_at"`
}
