// Package repository holds the MySQL data access for the classroom
// registry and saved exams. Every query is scoped to the owning admin so
// handlers never see another admin's rows.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when a write collides with an existing row, such
// as a second classroom with the same name. Handlers translate this into
// an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a unique key violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
