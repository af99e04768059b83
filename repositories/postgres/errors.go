package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/upb/healthedu-backend/repositories"
)

// PostgreSQL error codes the repositories translate
const (
	pqUniqueViolation      = "23505"
	pqNotNullViolation     = "23502"
	pqCheckViolation       = "23514"
	pqStringDataTruncation = "22001"
	pqInvalidTextRep       = "22P02"
)

// translateError maps driver errors onto repository sentinels, keeping the
// original error in the chain.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repositories.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, repositories.ErrDuplicate, pqErr.Message)
		case pqNotNullViolation, pqCheckViolation, pqStringDataTruncation, pqInvalidTextRep:
			return fmt.Errorf("%s: %w: %s", op, repositories.ErrInvalidData, pqErr.Message)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
