package guard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"crm_backend/internal/leads/repository"
	"crm_backend/platform/apperr"
	"crm_backend/platform/db"
)

type fakeIndex struct {
	emails  map[string]bool
	locked  []string
	lockErr error
}

func (f *fakeIndex) LockEmail(ctx context.Context, q db.DBTX, email string) error {
	f.locked = append(f.locked, email)
	return f.lockErr
}

func (f *fakeIndex) EmailExists(ctx context.Context, q db.DBTX, email string) (bool, error) {
	return f.emails[email], nil
}

func TestCheckUniqueLocksBeforeChecking(t *testing.T) {
	index := &fakeIndex{emails: map[string]bool{}}
	if err := New(index).CheckUnique(context.Background(), nil, "ada@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(index.locked) != 1 || index.locked[0] != "ada@example.com" {
		t.Fatalf("expected email lock, got %v", index.locked)
	}
}

func TestCheckUniqueRejectsDuplicate(t *testing.T) {
	index := &fakeIndex{emails: map[string]bool{"ada@example.com": true}}
	err := New(index).CheckUnique(context.Background(), nil, "ada@example.com")
	if !apperr.Is(err, apperr.KindValidation) || err.Error() != MsgEmailExists {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
}

func TestCheckUniqueIsCaseSensitive(t *testing.T) {
	index := &fakeIndex{emails: map[string]bool{"ada@example.com": true}}
	if err := New(index).CheckUnique(context.Background(), nil, "Ada@Example.com"); err != nil {
		t.Fatalf("expected different casing to pass, got %v", err)
	}
}

func TestCheckUniquePropagatesLockFailure(t *testing.T) {
	lockErr := errors.New("lock timeout")
	index := &fakeIndex{lockErr: lockErr}
	if err := New(index).CheckUnique(context.Background(), nil, "a@b.co"); !errors.Is(err, lockErr) {
		t.Fatalf("expected lock error, got %v", err)
	}
}

func TestMapInsertError(t *testing.T) {
	err := MapInsertError(fmt.Errorf("create: %w", repository.ErrDuplicateEmail))
	if !apperr.Is(err, apperr.KindValidation) || err.Error() != MsgEmailExists {
		t.Fatalf("expected duplicate email error, got %v", err)
	}

	other := errors.New("boom")
	if MapInsertError(other) != other {
		t.Fatal("expected unrelated errors to pass through")
	}
}
