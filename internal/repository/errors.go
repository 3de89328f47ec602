// Package repository implements the persistence layer on top of
// database/sql with the MySQL driver. Driver-specific error numbers
// are translated here into the store package's sentinel errors so that
// strategies and handlers never inspect MySQL codes themselves.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/pkamnerd/movie-booking-locks/internal/store"
)

// MySQL server error numbers the booking strategies care about.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// wrapStoreErr maps a MySQL driver error onto the matching store
// sentinel while keeping the server's message for the 423 response
// body. Unrecognised errors pass through untouched.
func wrapStoreErr(err error) error {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}
	switch myErr.Number {
	case mysqlErrDuplicateEntry:
		return fmt.Errorf("%w: %s", store.ErrDuplicateEntry, myErr.Message)
	case mysqlErrLockWaitTimeout:
		return fmt.Errorf("%w: %s", store.ErrLockWaitTimeout, myErr.Message)
	case mysqlErrDeadlock:
		return fmt.Errorf("%w: %s", store.ErrDeadlock, myErr.Message)
	}
	return err
}
