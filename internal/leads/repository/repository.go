package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"crm_backend/internal/leads/domain"
	"crm_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("lead not found")
	ErrDuplicateEmail = errors.New("lead email already exists")
)

const (
	pgUniqueViolation    = "23505"
	emailUniqueIndexName = "idx_lead_email_unique"
)

// Repository is the pgx-backed lead store. It holds no connection of its
// own: callers pass the pool or a transaction.
type Repository struct{}

func New() *Repository {
	return &Repository{}
}

type Lead struct {
	ID                     uuid.UUID
	FirstName              string
	LastName               string
	Email                  string
	Phone                  *string
	CompanyName            *string
	JobTitle               *string
	Source                 domain.Source
	Status                 domain.Status
	Score                  int
	Notes                  *string
	ConvertedPersonID      *uuid.UUID
	ConvertedCompanyID     *uuid.UUID
	ConvertedOpportunityID *uuid.UUID
	ConvertedAt            *time.Time
	LastContactedAt        *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              *time.Time
}

// FullName joins first and last name.
func (l Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

type CreateLeadParams struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       *string
	CompanyName *string
	JobTitle    *string
	Source      domain.Source
	Score       int
	Notes       *string
}

type ListParams struct {
	Status *domain.Status
	Source *domain.Source
}

type UpdateStatusParams struct {
	ID     uuid.UUID
	Status domain.Status
	// ContactedAt is applied only when last_contacted_at is still null.
	ContactedAt *time.Time
}

type MarkConvertedParams struct {
	ID            uuid.UUID
	PersonID      *uuid.UUID
	CompanyID     *uuid.UUID
	OpportunityID *uuid.UUID
	ConvertedAt   time.Time
}

const leadColumns = `
	id, first_name, last_name, email, phone, company_name, job_title,
	source, status, score, notes,
	converted_person_id, converted_company_id, converted_opportunity_id, converted_at,
	last_contacted_at, created_at, updated_at, deleted_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var source, status string
	err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Email, &lead.Phone, &lead.CompanyName, &lead.JobTitle,
		&source, &status, &lead.Score, &lead.Notes,
		&lead.ConvertedPersonID, &lead.ConvertedCompanyID, &lead.ConvertedOpportunityID, &lead.ConvertedAt,
		&lead.LastContactedAt, &lead.CreatedAt, &lead.UpdatedAt, &lead.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	lead.Source = domain.Source(source)
	lead.Status = domain.Status(status)
	return lead, nil
}

// LockEmail serializes creators of the same email until the transaction ends.
func (r *Repository) LockEmail(ctx context.Context, q db.DBTX, email string) error {
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, email)
	return err
}

// EmailExists reports whether a live lead already uses email (exact match).
func (r *Repository) EmailExists(ctx context.Context, q db.DBTX, email string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM leads WHERE email = $1 AND deleted_at IS NULL
		)
	`, email).Scan(&exists)
	return exists, err
}

func (r *Repository) Create(ctx context.Context, q db.DBTX, params CreateLeadParams) (Lead, error) {
	lead, err := scanLead(q.QueryRow(ctx, `
		INSERT INTO leads (
			first_name, last_name, email, phone, company_name, job_title, source, status, score, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING`+leadColumns,
		params.FirstName, params.LastName, params.Email, params.Phone, params.CompanyName, params.JobTitle,
		string(params.Source), string(domain.StatusNew), params.Score, params.Notes,
	))
	if isEmailUniqueViolation(err) {
		return Lead{}, ErrDuplicateEmail
	}
	return lead, err
}

func (r *Repository) GetByID(ctx context.Context, q db.DBTX, id uuid.UUID) (Lead, error) {
	return scanLead(q.QueryRow(ctx, `
		SELECT`+leadColumns+`
		FROM leads
		WHERE id = $1 AND deleted_at IS NULL
	`, id))
}

// GetByIDForUpdate locks the lead row for the rest of the transaction.
func (r *Repository) GetByIDForUpdate(ctx context.Context, q db.DBTX, id uuid.UUID) (Lead, error) {
	return scanLead(q.QueryRow(ctx, `
		SELECT`+leadColumns+`
		FROM leads
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`, id))
}

func (r *Repository) List(ctx context.Context, q db.DBTX, params ListParams) ([]Lead, error) {
	var status, source *string
	if params.Status != nil {
		value := string(*params.Status)
		status = &value
	}
	if params.Source != nil {
		value := string(*params.Source)
		source = &value
	}

	rows, err := q.Query(ctx, `
		SELECT`+leadColumns+`
		FROM leads
		WHERE deleted_at IS NULL
			AND ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR source = $2)
		ORDER BY created_at DESC, id DESC
	`, status, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// UpdateStatus refuses to touch converted rows even if the caller skipped the
// state machine; in that case ErrNotFound is returned.
func (r *Repository) UpdateStatus(ctx context.Context, q db.DBTX, params UpdateStatusParams) (Lead, error) {
	return scanLead(q.QueryRow(ctx, `
		UPDATE leads
		SET status = $2,
			last_contacted_at = COALESCE(last_contacted_at, $3),
			updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL AND status <> 'converted'
		RETURNING`+leadColumns,
		params.ID, string(params.Status), params.ContactedAt,
	))
}

func (r *Repository) MarkConverted(ctx context.Context, q db.DBTX, params MarkConvertedParams) (Lead, error) {
	return scanLead(q.QueryRow(ctx, `
		UPDATE leads
		SET status = 'converted',
			converted_person_id = $2,
			converted_company_id = $3,
			converted_opportunity_id = $4,
			converted_at = $5,
			updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL AND status <> 'converted'
		RETURNING`+leadColumns,
		params.ID, params.PersonID, params.CompanyID, params.OpportunityID, params.ConvertedAt,
	))
}

func (r *Repository) SoftDelete(ctx context.Context, q db.DBTX, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `
		UPDATE leads
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isEmailUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == emailUniqueIndexName
}
