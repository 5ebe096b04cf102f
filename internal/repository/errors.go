// Package repository holds the database/sql data access layer.  Lookups
// that find nothing return sql.ErrNoRows; the sentinels below describe
// constraint outcomes so that handlers can tell them apart from
// infrastructure failures.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when a delete cannot be performed because
// dependent records exist, such as deleting a room that still has
// bookings.  Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrDuplicate is returned when an insert or update would violate a
// unique key, for example a second room with the same number in one
// hotel.
var ErrDuplicate = errors.New("duplicate")

// ErrEmailExists is returned by UserRepo.Create for an email that is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// MySQL server error numbers.
const (
	errDupEntry        = 1062
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
)

func mysqlCode(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

func isDuplicate(err error) bool  { return mysqlCode(err) == errDupEntry }
func isReferenced(err error) bool { return mysqlCode(err) == errRowIsReferenced }
func isMissingParent(err error) bool {
	return mysqlCode(err) == errNoReferencedRow
}
