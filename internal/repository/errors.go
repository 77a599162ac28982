package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	customerrors "github.com/vinyl-library/vinyl-library-api/internal/errors"
)

// storageErr wraps a driver error with the operation name and tags it with
// ErrTimeout or ErrConnectionFailed when the failure is about reachability.
func storageErr(op string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w: %w", op, customerrors.ErrTimeout, err)
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone), errors.As(err, &netErr):
		return fmt.Errorf("%s: %w: %w", op, customerrors.ErrConnectionFailed, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
