package model

import "time"

// Classroom is one row of an admin's classroom registry. Position fixes the
// order in which rooms are filled when a seating request does not list its
// own classrooms.
//
// Fields:
//
//	ID         – primary key identifier.
//	AdminID    – admin that owns the registry entry.
//	Name       – room name, unique per admin.
//	BenchCount – benches available for exams (>= 1).
//	Supervisor – invigilator normally assigned to the room (nil if none).
//	Position   – fill order within the registry.
//	CreatedAt  – creation timestamp.
//	UpdatedAt  – last update timestamp.
type Classroom struct {
	ID         uint64    `json:"id"`
	AdminID    uint64    `json:"admin_id"`
	Name       string    `json:"name"`
	BenchCount int       `json:"benches"`
	Supervisor *string   `json:"supervisor"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
