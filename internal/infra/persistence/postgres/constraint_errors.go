package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes inspected by the repositories.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Unique indexes whose violations map to distinct domain errors.
const (
	constraintOwnerEmail      = "uq_owner_accounts_email"
	constraintMemberEmail     = "uq_store_members_store_email"
	constraintMemberOwner     = "uq_store_members_store_owner"
	constraintSerialNumber    = "uq_product_items_serial_number"
	constraintWarrantyTriplet = "uq_warranties_product_customer_store"
)

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}

	return nil, false
}

func hasSQLState(err error, code string) bool {
	pgErr, ok := asPgError(err)

	return ok && pgErr.Code == code
}

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || hasSQLState(err, pgUniqueViolation)
}

// violatesUnique reports a unique violation of the named index. Translated
// errors carry no constraint name, so they match any index.
func violatesUnique(err error, constraint string) bool {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || hasSQLState(err, pgForeignKeyViolation)
}

func isNotNullConstraintViolation(err error) bool {
	return hasSQLState(err, pgNotNullViolation)
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated) || hasSQLState(err, pgCheckViolation)
}
