package repository

import (
	"context"
	"errors"
	"time"

	"crm_backend/internal/opportunities/domain"
	"crm_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("opportunity not found")

type Repository struct {
	conn db.DBTX
}

func New(conn db.DBTX) *Repository {
	return &Repository{conn: conn}
}

type Opportunity struct {
	ID               uuid.UUID
	Name             string
	Stage            domain.Stage
	AmountMicros     *int64
	CurrencyCode     string
	CloseDate        *time.Time
	CompanyID        *uuid.UUID
	PointOfContactID *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CreateParams struct {
	Name             string
	Stage            domain.Stage
	AmountMicros     *int64
	CurrencyCode     string
	CloseDate        *time.Time
	CompanyID        *uuid.UUID
	PointOfContactID *uuid.UUID
}

const opportunityColumns = `
	id, name, stage, amount_micros, currency_code, close_date,
	company_id, point_of_contact_id, created_at, updated_at`

func scanOpportunity(row pgx.Row) (Opportunity, error) {
	var o Opportunity
	var stage string
	err := row.Scan(&o.ID, &o.Name, &stage, &o.AmountMicros, &o.CurrencyCode, &o.CloseDate,
		&o.CompanyID, &o.PointOfContactID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Opportunity{}, ErrNotFound
	}
	if err != nil {
		return Opportunity{}, err
	}
	o.Stage = domain.Stage(stage)
	return o, nil
}

func (r *Repository) Create(ctx context.Context, q db.DBTX, params CreateParams) (Opportunity, error) {
	return scanOpportunity(q.QueryRow(ctx, `
		INSERT INTO opportunities (
			name, stage, amount_micros, currency_code, close_date, company_id, point_of_contact_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING`+opportunityColumns,
		params.Name, string(params.Stage), params.AmountMicros, params.CurrencyCode, params.CloseDate,
		params.CompanyID, params.PointOfContactID,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Opportunity, error) {
	return scanOpportunity(r.conn.QueryRow(ctx, `
		SELECT`+opportunityColumns+`
		FROM opportunities
		WHERE id = $1 AND deleted_at IS NULL
	`, id))
}
