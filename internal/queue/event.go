// Package queue defines the seating events carried over RabbitMQ and the
// background consumer that records them.
package queue

// SeatingGeneratedQueue is the durable queue seating events are routed to.
const SeatingGeneratedQueue = "seating.generated"

// SeatingGeneratedEvent is published after a seating plan is produced. It
// carries enough for an audit trail without touching the database.
type SeatingGeneratedEvent struct {
	EventID     string   `json:"event_id"`
	ExamID      *uint64  `json:"exam_id,omitempty"`
	AdminID     uint64   `json:"admin_id"`
	ExamDate    string   `json:"exam_date"`
	TimeFrom    string   `json:"exam_time_from"`
	TimeTo      string   `json:"exam_time_to"`
	Mode        string   `json:"seating_mode"`
	Levels      []string `json:"levels"`
	Classrooms  []string `json:"classrooms"`
	Students    int      `json:"students"`
	BenchesUsed int      `json:"benches_used"`
	GeneratedAt string   `json:"generated_at"`
}
