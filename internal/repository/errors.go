package repository

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsNotFound signals an empty result set.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsTransient reports errors worth retrying: timeouts, dropped connections
// and postgres admin shutdowns.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		// 08xxx connection exceptions, 57P01 admin shutdown, 40001 serialization failure.
		return (len(pgerr.Code) == 5 && pgerr.Code[:2] == "08") || pgerr.Code == "57P01" || pgerr.Code == "40001"
	}
	return pgconn.SafeToRetry(err)
}
