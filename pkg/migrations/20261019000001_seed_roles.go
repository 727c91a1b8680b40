package migrations

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		grants := map[string][]string{
			// Admins manage everything.
			"admin": {
				"companies:read", "companies:write",
				"jobs:read", "jobs:write",
				"users:read", "users:write",
			},
			// Viewers can browse the board.
			"viewer": {
				"companies:read",
				"jobs:read",
			},
		}

		for _, role := range []string{"admin", "viewer"} {
			_, err := db.Exec(`INSERT INTO roles (name, is_system) VALUES (?, TRUE)`, role)
			if err != nil {
				return errors.WithStack(err)
			}

			var roleID int
			err = db.QueryRow(`SELECT id FROM roles WHERE name = ?`, role).Scan(&roleID)
			if err != nil {
				return errors.WithStack(err)
			}

			for _, grant := range grants[role] {
				resource, operation, _ := strings.Cut(grant, ":")
				_, err = db.Exec(`INSERT INTO permissions (role_id, resource, operation) VALUES (?, ?, ?)`,
					roleID, resource, operation)
				if err != nil {
					return errors.WithStack(err)
				}
			}
		}

		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`DELETE FROM permissions WHERE role_id IN (SELECT id FROM roles WHERE name IN ('admin', 'viewer'))`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`DELETE FROM roles WHERE name IN ('admin', 'viewer')`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
