package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/timelazy/timelazy-server/internal/model"
)

// ErrExamNotFound is returned when an exam lookup fails.
var ErrExamNotFound = errors.New("exam not found")

// ExamRepo stores saved seating requests. The request is kept as a JSON
// document; plans are regenerated from it on every read.
type ExamRepo struct {
	db *sql.DB
}

// NewExamRepo constructs an ExamRepo with the given DB handle.
func NewExamRepo(db *sql.DB) *ExamRepo {
	return &ExamRepo{db: db}
}

const examColumns = `id, admin_id, title, institution, request, created_at`

func scanExam(s rowScanner) (*model.Exam, error) {
	var (
		e           model.Exam
		institution sql.NullString
		raw         []byte
	)
	if err := s.Scan(&e.ID, &e.AdminID, &e.Title, &institution, &raw, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Institution = institution.String
	if err := json.Unmarshal(raw, &e.Request); err != nil {
		return nil, fmt.Errorf("decode exam %d request: %w", e.ID, err)
	}
	return &e, nil
}

// Create inserts an exam and reads back the stored row.
func (r *ExamRepo) Create(ctx context.Context, e *model.Exam) error {
	raw, err := json.Marshal(e.Request)
	if err != nil {
		return err
	}
	var institution sql.NullString
	if e.Institution != "" {
		institution = sql.NullString{String: e.Institution, Valid: true}
	}
	const q = `INSERT INTO exams (admin_id, title, institution, request) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.AdminID, e.Title, institution, raw)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByIDAndAdmin(ctx, uint64(id), e.AdminID)
	if err != nil {
		return err
	}
	*e = *stored
	return nil
}

// GetByIDAndAdmin returns the exam only if it belongs to adminID.
func (r *ExamRepo) GetByIDAndAdmin(ctx context.Context, id, adminID uint64) (*model.Exam, error) {
	q := `SELECT ` + examColumns + ` FROM exams WHERE id = ? AND admin_id = ?`
	e, err := scanExam(r.db.QueryRowContext(ctx, q, id, adminID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	return e, nil
}

// ListByAdmin returns the admin's exams, newest first.
func (r *ExamRepo) ListByAdmin(ctx context.Context, adminID uint64) ([]*model.Exam, error) {
	q := `SELECT ` + examColumns + ` FROM exams WHERE admin_id = ? ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Exam, 0)
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByIDAndAdmin removes a saved exam.
func (r *ExamRepo) DeleteByIDAndAdmin(ctx context.Context, id, adminID uint64) error {
	const q = `DELETE FROM exams WHERE id = ? AND admin_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, adminID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrExamNotFound
	}
	return nil
}
