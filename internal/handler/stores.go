package handler

import (
	"context"

	"github.com/timelazy/timelazy-server/internal/model"
	"github.com/timelazy/timelazy-server/internal/queue"
	"github.com/timelazy/timelazy-server/internal/timetable"
)

// ClassroomStore is the slice of repository.ClassroomRepo the handlers use.
type ClassroomStore interface {
	Create(ctx context.Context, c *model.Classroom) error
	GetByIDAndAdmin(ctx context.Context, id, adminID uint64) (*model.Classroom, error)
	ListByAdmin(ctx context.Context, adminID uint64) ([]*model.Classroom, error)
	UpdateByIDAndAdmin(ctx context.Context, c *model.Classroom) error
	DeleteByIDAndAdmin(ctx context.Context, id, adminID uint64) error
}

// ExamStore is the slice of repository.ExamRepo the handlers use.
type ExamStore interface {
	Create(ctx context.Context, e *model.Exam) error
	GetByIDAndAdmin(ctx context.Context, id, adminID uint64) (*model.Exam, error)
	ListByAdmin(ctx context.Context, adminID uint64) ([]*model.Exam, error)
	DeleteByIDAndAdmin(ctx context.Context, id, adminID uint64) error
}

// EventPublisher sends seating events to the broker.
type EventPublisher interface {
	PublishSeatingGenerated(ctx context.Context, ev queue.SeatingGeneratedEvent) error
}

// CachePurger drops cached responses made stale by a write.
type CachePurger interface {
	Purge(ctx context.Context, user string, paths ...string) error
}

// Solver produces timetables.
type Solver interface {
	Generate(ctx context.Context, req timetable.Request) (*timetable.Response, error)
}
