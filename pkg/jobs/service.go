package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jobly/jobly/pkg/database"
	"github.com/jobly/jobly/pkg/errcodes"
	"github.com/jobly/jobly/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveJobOptions struct {
	ID          *int
	WithCompany bool
}

// ListJobsOptions filters a job search. A false HasEquity applies no equity
// filter at all.
type ListJobsOptions struct {
	Title     *string
	MinSalary *int
	HasEquity bool
}

type UpdateJobOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateJob inserts a job for an existing company.
func (svc *Service) CreateJob(ctx context.Context, job *models.Job) error {
	exists, err := svc.db.
		NewSelect().
		Model((*models.Company)(nil)).
		Where("c.handle = ?", job.CompanyHandle).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.ValidationError(fmt.Sprintf("%q does not match an existing company", "companyHandle"))
	}

	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = job.CreatedAt

	_, err = svc.db.
		NewInsert().
		Model(job).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveJob(ctx context.Context, opts RetrieveJobOptions) (*models.Job, error) {
	job := &models.Job{}

	q := svc.db.
		NewSelect().
		Model(job)

	if opts.ID != nil {
		q = q.Where("j.id = ?", *opts.ID)
	}
	if opts.WithCompany {
		q = q.Relation("Company")
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Job")
		}
		return nil, errors.WithStack(err)
	}

	return job, nil
}

// ListJobs returns the jobs matching opts ordered by title, each carrying the
// name of its company.
func (svc *Service) ListJobs(ctx context.Context, opts ListJobsOptions) ([]*models.Job, error) {
	jobs := []*models.Job{}

	q := svc.db.
		NewSelect().
		Model(&jobs).
		ColumnExpr("j.*").
		ColumnExpr("c.name AS company_name").
		Join("JOIN companies AS c ON c.handle = j.company_handle").
		Order("j.title ASC", "j.id ASC")

	if opts.Title != nil && *opts.Title != "" {
		q = q.Where("LOWER(j.title) LIKE ? ESCAPE '!'", database.ContainsPattern(*opts.Title))
	}
	if opts.MinSalary != nil {
		q = q.Where("j.salary >= ?", *opts.MinSalary)
	}
	if opts.HasEquity {
		q = q.Where("CAST(j.equity AS REAL) > 0")
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return jobs, nil
}

// UpdateJob writes the given columns. A job that does not exist is reported
// as not found even when there is nothing to write.
func (svc *Service) UpdateJob(ctx context.Context, job *models.Job, opts UpdateJobOptions) error {
	if len(opts.Columns) == 0 {
		exists, err := svc.db.NewSelect().Model((*models.Job)(nil)).Where("j.id = ?", job.ID).Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.NotFound("Job")
		}
		return nil
	}

	job.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	res, err := svc.db.
		NewUpdate().
		Model(job).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		return errcodes.NotFound("Job")
	}
	return nil
}

// DeleteJob removes a job. Deleting a job that is already gone is reported
// as not found.
func (svc *Service) DeleteJob(ctx context.Context, id int) error {
	res, err := svc.db.
		NewDelete().
		Model((*models.Job)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		return errcodes.NotFound("Job")
	}
	return nil
}
