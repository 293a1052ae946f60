package mysql

import (
	"errors"
	"fmt"
	"strings"

	approvalDomain "visitor-admission/internal/domain/approval"

	mysqldrv "github.com/go-sql-driver/mysql"
)

// MySQL server error numbers
const (
	erDupEntry         = 1062
	erLockWaitTimeout  = 1205
	erLockDeadlock     = 1213
	sqliteUniqueFailed = "UNIQUE constraint failed"
)

// txErr surfaces lock contention as ErrConcurrencyConflict so callers can retry.
func txErr(err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) && (myErr.Number == erLockWaitTimeout || myErr.Number == erLockDeadlock) {
		return fmt.Errorf("%w: %v", approvalDomain.ErrConcurrencyConflict, err)
	}
	if strings.Contains(err.Error(), "database is locked") {
		return fmt.Errorf("%w: %v", approvalDomain.ErrConcurrencyConflict, err)
	}
	return err
}

func isDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == erDupEntry
	}
	return strings.Contains(err.Error(), sqliteUniqueFailed)
}
