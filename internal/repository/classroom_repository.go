package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/timelazy/timelazy-server/internal/model"
)

// ErrClassroomNotFound is returned when a classroom lookup fails.
var ErrClassroomNotFound = errors.New("classroom not found")

// ClassroomRepo stores the per-admin classroom registry.
type ClassroomRepo struct {
	db *sql.DB
}

// NewClassroomRepo constructs a ClassroomRepo with the given DB handle.
func NewClassroomRepo(db *sql.DB) *ClassroomRepo {
	return &ClassroomRepo{db: db}
}

const classroomColumns = `id, admin_id, name, bench_count, supervisor, position, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClassroom(s rowScanner) (*model.Classroom, error) {
	var (
		c          model.Classroom
		supervisor sql.NullString
	)
	if err := s.Scan(&c.ID, &c.AdminID, &c.Name, &c.BenchCount, &supervisor, &c.Position, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if supervisor.Valid {
		c.Supervisor = &supervisor.String
	}
	return &c, nil
}

// Create inserts a classroom. When Position is zero the room is appended
// after the admin's current last room. The stored row is read back so the
// timestamps are filled.
func (r *ClassroomRepo) Create(ctx context.Context, c *model.Classroom) error {
	if c.Position == 0 {
		const qPos = `SELECT COALESCE(MAX(position), 0) + 1 FROM classrooms WHERE admin_id = ?`
		if err := r.db.QueryRowContext(ctx, qPos, c.AdminID).Scan(&c.Position); err != nil {
			return err
		}
	}
	const qInsert = `INSERT INTO classrooms (admin_id, name, bench_count, supervisor, position)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, c.AdminID, c.Name, c.BenchCount, c.Supervisor, c.Position)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: classroom %q already exists", ErrConflict, c.Name)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByIDAndAdmin(ctx, uint64(id), c.AdminID)
	if err != nil {
		return err
	}
	*c = *stored
	return nil
}

// GetByIDAndAdmin returns the classroom only if it belongs to adminID.
func (r *ClassroomRepo) GetByIDAndAdmin(ctx context.Context, id, adminID uint64) (*model.Classroom, error) {
	q := `SELECT ` + classroomColumns + ` FROM classrooms WHERE id = ? AND admin_id = ?`
	c, err := scanClassroom(r.db.QueryRowContext(ctx, q, id, adminID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassroomNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListByAdmin returns the admin's registry in fill order.
func (r *ClassroomRepo) ListByAdmin(ctx context.Context, adminID uint64) ([]*model.Classroom, error) {
	q := `SELECT ` + classroomColumns + ` FROM classrooms WHERE admin_id = ? ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, q, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Classroom, 0)
	for rows.Next() {
		c, err := scanClassroom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateByIDAndAdmin overwrites name, bench count, supervisor and position.
func (r *ClassroomRepo) UpdateByIDAndAdmin(ctx context.Context, c *model.Classroom) error {
	const q = `UPDATE classrooms
	           SET name = ?, bench_count = ?, supervisor = ?, position = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND admin_id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.BenchCount, c.Supervisor, c.Position, c.ID, c.AdminID)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: classroom %q already exists", ErrConflict, c.Name)
		}
		return err
	}
	// MySQL reports zero affected rows when nothing changed, so confirm
	// existence before calling it missing.
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByIDAndAdmin(ctx, c.ID, c.AdminID); err != nil {
			return err
		}
	}
	stored, err := r.GetByIDAndAdmin(ctx, c.ID, c.AdminID)
	if err != nil {
		return err
	}
	*c = *stored
	return nil
}

// DeleteByIDAndAdmin removes a classroom from the registry.
func (r *ClassroomRepo) DeleteByIDAndAdmin(ctx context.Context, id, adminID uint64) error {
	const q = `DELETE FROM classrooms WHERE id = ? AND admin_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, adminID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrClassroomNotFound
	}
	return nil
}
