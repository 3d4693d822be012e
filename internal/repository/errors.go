// Package repository defines error values reused across repositories and
// the mapping from MySQL driver errors onto the reservation engine's
// taxonomy.  Sentinel values let handlers distinguish failure scenarios
// without string matching.
package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/cinetix/seat-reservation/internal/reservation"
)

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// ErrShowNotFound is returned when a show lookup yields no rows.
var ErrShowNotFound = errors.New("show not found")

// ErrEmailExists is returned when registering a user with a taken email.
var ErrEmailExists = errors.New("email already exists")

// MySQL server error numbers the claim path cares about.
const (
	mysqlErrLockWaitTimeout = 1205 // ER_LOCK_WAIT_TIMEOUT
	mysqlErrDeadlock        = 1213 // ER_LOCK_DEADLOCK
	mysqlErrFKConstraint    = 1452 // ER_NO_REFERENCED_ROW_2
)

// mapStoreErr translates driver-level failures into the engine's error
// taxonomy.  Lock wait timeouts and deadlock aborts are transient: the
// caller may retry after re-reading seat state.  FK violations surface as
// not-found (the referenced movie or show is gone).  Anything else passes
// through unchanged.
func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrLockWaitTimeout, mysqlErrDeadlock:
			return fmt.Errorf("%w: %v", reservation.ErrTransient, err)
		case mysqlErrFKConstraint:
			return fmt.Errorf("%w: %v", reservation.ErrNotFound, err)
		}
		return err
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return fmt.Errorf("%w: %v", reservation.ErrTransient, err)
	}
	return err
}
