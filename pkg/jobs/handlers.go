package jobs

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jobly/jobly/pkg/errcodes"
	"github.com/jobly/jobly/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// jobStore is the data access the handlers depend on.
type jobStore interface {
	CreateJob(ctx context.Context, job *models.Job) error
	RetrieveJob(ctx context.Context, opts RetrieveJobOptions) (*models.Job, error)
	ListJobs(ctx context.Context, opts ListJobsOptions) ([]*models.Job, error)
	UpdateJob(ctx context.Context, job *models.Job, opts UpdateJobOptions) error
	DeleteJob(ctx context.Context, id int) error
}

type handler struct {
	jobService jobStore
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := CreateJobPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	job := &models.Job{
		Title:         params.Title,
		Salary:        params.Salary,
		Equity:        params.Equity,
		CompanyHandle: params.CompanyHandle,
	}

	err := h.jobService.CreateJob(ctx, job)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, echo.Map{"job": job}))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	coerceSearchParams(c)

	// Bind params.
	params := ListJobsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	jobs, err := h.jobService.ListJobs(ctx, ListJobsOptions{
		Title:     params.Title,
		MinSalary: params.MinSalary,
		HasEquity: params.HasEquity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{"jobs": jobs}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Job")
	}

	job, err := h.jobService.RetrieveJob(ctx, RetrieveJobOptions{
		ID:          &id,
		WithCompany: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{"job": job}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Job")
	}

	// Bind params.
	params := UpdateJobPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	job := &models.Job{ID: id}
	opts := UpdateJobOptions{Columns: []string{}}
	if params.Title != nil {
		job.Title = *params.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if params.Salary != nil {
		job.Salary = params.Salary
		opts.Columns = append(opts.Columns, "salary")
	}
	if params.Equity != nil {
		job.Equity = params.Equity
		opts.Columns = append(opts.Columns, "equity")
	}

	err = h.jobService.UpdateJob(ctx, job, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	job, err = h.jobService.RetrieveJob(ctx, RetrieveJobOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{"job": job}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Job")
	}

	err = h.jobService.DeleteJob(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{"deleted": id}))
}

// coerceSearchParams rewrites hasEquity in the request's query values so
// every search carries an explicit boolean. Only the exact value "true"
// enables the filter. An empty minSalary is dropped; any other value is left
// for the binder, which rejects values that are not integers.
func coerceSearchParams(c echo.Context) {
	params := c.QueryParams()
	if params.Get("minSalary") == "" {
		params.Del("minSalary")
	}
	if params.Get("hasEquity") == "true" {
		params.Set("hasEquity", "true")
	} else {
		params.Set("hasEquity", "false")
	}
}
