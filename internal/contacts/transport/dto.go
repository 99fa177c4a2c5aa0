package transport

import (
	"time"

	"github.com/google/uuid"
)

type PersonResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     *string    `json:"email"`
	CompanyID *uuid.UUID `json:"company_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CompanyResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	DomainName string    `json:"domain_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
