// Package dberr turns driver errors into classified application errors at
// the data-access boundary.
package dberr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"asistencia-api/internal/apperr"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgAdminShutdown       = "57P01"
	pgCrashShutdown       = "57P02"
	pgCannotConnectNow    = "57P03"
)

// MySQL server error numbers.
const (
	myDupEntry         = 1062
	myNoReferencedRow  = 1216
	myRowIsReferenced  = 1217
	myRowIsReferenced2 = 1451
	myNoReferencedRow2 = 1452
	myConCountError    = 1040
	myTooManyUserConns = 1203
	myServerShutdown   = 1053
)

// Translate classifies err. It is total: anything unrecognised becomes
// apperr.KindInternal.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("")
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fromPostgres(pqErr)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return fromMySQL(myErr)
	}

	if isConnectivity(err) {
		return apperr.Unavailable(err)
	}

	return apperr.Internal(err)
}

func fromPostgres(err *pq.Error) error {
	switch {
	case err.Code == pgUniqueViolation:
		return apperr.Conflict("", err)
	case err.Code == pgForeignKeyViolation:
		return apperr.Referential("", err)
	case err.Code.Class() == "08",
		err.Code == pgAdminShutdown,
		err.Code == pgCrashShutdown,
		err.Code == pgCannotConnectNow:
		return apperr.Unavailable(err)
	default:
		return apperr.Internal(err)
	}
}

func fromMySQL(err *mysql.MySQLError) error {
	switch err.Number {
	case myDupEntry:
		return apperr.Conflict("", err)
	case myNoReferencedRow, myNoReferencedRow2, myRowIsReferenced, myRowIsReferenced2:
		return apperr.Referential("", err)
	case myConCountError, myTooManyUserConns, myServerShutdown:
		return apperr.Unavailable(err)
	default:
		return apperr.Internal(err)
	}
}

func isConnectivity(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}
