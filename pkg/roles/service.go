package roles

import (
	"context"

	"github.com/jobly/jobly/pkg/errcodes"
	"github.com/jobly/jobly/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Service handles role operations. Roles are seeded by migrations and are
// read-only through the API.
type Service struct {
	db *bun.DB
}

// NewService creates a new roles service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// Retrieve gets a role by ID with its permissions.
func (s *Service) Retrieve(ctx context.Context, id int) (*models.Role, error) {
	role := &models.Role{}
	err := s.db.NewSelect().
		Model(role).
		Relation("Permissions").
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.NotFound("Role")
	}
	return role, nil
}

// List returns every role with its permissions, ordered by name.
func (s *Service) List(ctx context.Context) ([]*models.Role, error) {
	roles := []*models.Role{}

	err := s.db.NewSelect().
		Model(&roles).
		Relation("Permissions").
		Order("r.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return roles, nil
}
