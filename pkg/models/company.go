package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Company struct {
	bun.BaseModel `bun:"table:companies,alias:c"`

	Handle       string    `bun:",pk" json:"handle"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `bun:",nullzero" json:"name"`
	Description  string    `json:"description"`
	NumEmployees *int      `json:"numEmployees"`
	LogoURL      *string   `bun:"logo_url" json:"logoUrl"`

	// Relations
	Jobs []*Job `bun:"rel:has-many,join:handle=company_handle" json:"jobs,omitempty"`
}
