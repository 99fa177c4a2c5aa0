package repository

import (
	"context"

	"crm_backend/platform/db"

	"github.com/google/uuid"
)

// =====================================
// Segregated Interfaces (Interface Segregation Principle)
// =====================================

// LeadReader provides read-only access to live leads.
type LeadReader interface {
	GetByID(ctx context.Context, q db.DBTX, id uuid.UUID) (Lead, error)
	List(ctx context.Context, q db.DBTX, params ListParams) ([]Lead, error)
}

// LeadWriter provides the mutations of the lead lifecycle. Every method
// accepts the executor so it can join a caller's transaction.
type LeadWriter interface {
	Create(ctx context.Context, q db.DBTX, params CreateLeadParams) (Lead, error)
	GetByIDForUpdate(ctx context.Context, q db.DBTX, id uuid.UUID) (Lead, error)
	UpdateStatus(ctx context.Context, q db.DBTX, params UpdateStatusParams) (Lead, error)
	MarkConverted(ctx context.Context, q db.DBTX, params MarkConvertedParams) (Lead, error)
	SoftDelete(ctx context.Context, q db.DBTX, id uuid.UUID) error
}

// EmailIndex backs the identity guard.
type EmailIndex interface {
	LockEmail(ctx context.Context, q db.DBTX, email string) error
	EmailExists(ctx context.Context, q db.DBTX, email string) (bool, error)
}

// LeadStore is the full persistence surface used by the leads module.
type LeadStore interface {
	LeadReader
	LeadWriter
	EmailIndex
}

var _ LeadStore = (*Repository)(nil)
