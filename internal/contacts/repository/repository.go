package repository

import (
	"context"
	"errors"
	"time"

	"crm_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	conn db.DBTX
}

// New binds reads to conn. Writes take the executor explicitly so they can
// join a caller's transaction.
func New(conn db.DBTX) *Repository {
	return &Repository{conn: conn}
}

type Person struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	CompanyID *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Company struct {
	ID         uuid.UUID
	Name       string
	DomainName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CreatePersonParams struct {
	Name      string
	Email     *string
	CompanyID *uuid.UUID
}

type CreateCompanyParams struct {
	Name       string
	DomainName string
}

func (r *Repository) CreatePerson(ctx context.Context, q db.DBTX, params CreatePersonParams) (Person, error) {
	var person Person
	err := q.QueryRow(ctx, `
		INSERT INTO people (name, email, company_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, company_id, created_at, updated_at
	`, params.Name, params.Email, params.CompanyID).Scan(
		&person.ID, &person.Name, &person.Email, &person.CompanyID, &person.CreatedAt, &person.UpdatedAt,
	)
	return person, err
}

func (r *Repository) CreateCompany(ctx context.Context, q db.DBTX, params CreateCompanyParams) (Company, error) {
	var company Company
	err := q.QueryRow(ctx, `
		INSERT INTO companies (name, domain_name)
		VALUES ($1, $2)
		RETURNING id, name, domain_name, created_at, updated_at
	`, params.Name, params.DomainName).Scan(
		&company.ID, &company.Name, &company.DomainName, &company.CreatedAt, &company.UpdatedAt,
	)
	return company, err
}

// AssignCompany links a person to a company.
func (r *Repository) AssignCompany(ctx context.Context, q db.DBTX, personID, companyID uuid.UUID) error {
	tag, err := q.Exec(ctx, `
		UPDATE people
		SET company_id = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, personID, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetPerson(ctx context.Context, id uuid.UUID) (Person, error) {
	var person Person
	err := r.conn.QueryRow(ctx, `
		SELECT id, name, email, company_id, created_at, updated_at
		FROM people
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&person.ID, &person.Name, &person.Email, &person.CompanyID, &person.CreatedAt, &person.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Person{}, ErrNotFound
	}
	return person, err
}

func (r *Repository) GetCompany(ctx context.Context, id uuid.UUID) (Company, error) {
	var company Company
	err := r.conn.QueryRow(ctx, `
		SELECT id, name, domain_name, created_at, updated_at
		FROM companies
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&company.ID, &company.Name, &company.DomainName, &company.CreatedAt, &company.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Company{}, ErrNotFound
	}
	return company, err
}
