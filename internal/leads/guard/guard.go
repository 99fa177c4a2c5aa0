// Package guard enforces email uniqueness across live leads.
//
// The check runs inside the creating transaction after an advisory lock on
// the email, and the partial unique index idx_lead_email_unique backs it up
// for writers that bypass the lock.
package guard

import (
	"context"
	"errors"

	"crm_backend/internal/leads/repository"
	"crm_backend/platform/apperr"
	"crm_backend/platform/db"
)

// MsgEmailExists is returned for a duplicate live email.
const MsgEmailExists = "Email already exists"

type Guard struct {
	index repository.EmailIndex
}

func New(index repository.EmailIndex) *Guard {
	return &Guard{index: index}
}

// CheckUnique must run inside the transaction that inserts the lead.
func (g *Guard) CheckUnique(ctx context.Context, q db.DBTX, email string) error {
	if err := g.index.LockEmail(ctx, q, email); err != nil {
		return err
	}

	exists, err := g.index.EmailExists(ctx, q, email)
	if err != nil {
		return err
	}
	if exists {
		return DuplicateEmail()
	}
	return nil
}

// MapInsertError turns a unique-index violation from the insert into the
// same error CheckUnique reports.
func MapInsertError(err error) error {
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return DuplicateEmail()
	}
	return err
}

// DuplicateEmail builds the duplicate-identity error.
func DuplicateEmail() *apperr.Error {
	return apperr.Validation(MsgEmailExists)
}
