package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE roles (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				name TEXT NOT NULL UNIQUE,
				is_system BOOLEAN NOT NULL DEFAULT FALSE
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE permissions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				role_id INTEGER NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
				resource TEXT NOT NULL,
				operation TEXT NOT NULL,
				UNIQUE(role_id, resource, operation)
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL,
				username TEXT NOT NULL UNIQUE COLLATE NOCASE,
				first_name TEXT NOT NULL,
				last_name TEXT NOT NULL,
				email TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				role_id INTEGER NOT NULL REFERENCES roles(id),
				is_active BOOLEAN NOT NULL DEFAULT TRUE
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE companies (
				handle TEXT PRIMARY KEY,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL,
				name TEXT NOT NULL UNIQUE,
				description TEXT NOT NULL DEFAULT '',
				num_employees INTEGER CHECK (num_employees >= 0),
				logo_url TEXT
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE jobs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL,
				title TEXT NOT NULL,
				salary INTEGER CHECK (salary >= 0),
				equity TEXT CHECK (CAST(equity AS REAL) BETWEEN 0 AND 1),
				company_handle TEXT NOT NULL REFERENCES companies(handle) ON DELETE CASCADE
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX idx_jobs_company_handle ON jobs(company_handle)`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX idx_jobs_salary ON jobs(salary)`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"jobs", "companies", "users", "permissions", "roles"} {
			_, err := db.Exec("DROP TABLE IF EXISTS " + table)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
