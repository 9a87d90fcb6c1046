package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
)

// Postgres error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	usersEmailConstraint  = "users_email_key"
)

// mapPgError translates driver errors into domain errors. Unknown errors pass through.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == usersEmailConstraint || pgErr.TableName == "users" {
				return fmt.Errorf("%w: %s", domain.ErrEmailTaken, pgErr.Detail)
			}
		case pgForeignKeyViolation:
			return domain.NewValidationError("Referenced record does not exist")
		}
		return err
	}

	if isUnavailable(err) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr) ||
		pgconn.Timeout(err) ||
		errors.Is(err, context.DeadlineExceeded)
}

// mapMongoError translates mongo driver errors into domain errors
func mapMongoError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return err
}
