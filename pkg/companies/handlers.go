package companies

import (
	"net/http"

	"github.com/jobly/jobly/pkg/errcodes"
	"github.com/jobly/jobly/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	companyService *Service
}

// companyDetail is the single-company response. Unlike list rows it always
// carries a jobs array, empty when the company has no openings.
type companyDetail struct {
	*models.Company
	Jobs []*models.Job `json:"jobs"`
}

func newCompanyDetail(company *models.Company) *companyDetail {
	jobs := company.Jobs
	if jobs == nil {
		jobs = []*models.Job{}
	}
	return &companyDetail{Company: company, Jobs: jobs}
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateCompanyPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	company := &models.Company{
		Handle:       params.Handle,
		Name:         params.Name,
		Description:  params.Description,
		NumEmployees: params.NumEmployees,
		LogoURL:      params.LogoURL,
	}
	if err := h.companyService.CreateCompany(ctx, company); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, echo.Map{"company": company}))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListCompaniesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	if params.MinEmployees != nil && params.MaxEmployees != nil && *params.MinEmployees > *params.MaxEmployees {
		return errcodes.ValidationError(`"minEmployees" cannot be greater than "maxEmployees"`)
	}

	companies, err := h.companyService.ListCompanies(ctx, ListCompaniesOptions{
		NameLike:     params.NameLike,
		MinEmployees: params.MinEmployees,
		MaxEmployees: params.MaxEmployees,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{"companies": companies}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	handle := c.Param("handle")

	company, err := h.companyService.RetrieveCompany(ctx, RetrieveCompanyOptions{
		Handle:   &handle,
		WithJobs: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{"company": newCompanyDetail(company)}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	handle := c.Param("handle")

	params := UpdateCompanyPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	company, err := h.companyService.RetrieveCompany(ctx, RetrieveCompanyOptions{
		Handle: &handle,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateCompanyOptions{Columns: []string{}}
	if params.Name != nil && *params.Name != company.Name {
		company.Name = *params.Name
		opts.Columns = append(opts.Columns, "name")
	}
	if params.Description != nil && *params.Description != company.Description {
		company.Description = *params.Description
		opts.Columns = append(opts.Columns, "description")
	}
	if params.NumEmployees != nil {
		company.NumEmployees = params.NumEmployees
		opts.Columns = append(opts.Columns, "num_employees")
	}
	if params.LogoURL != nil {
		company.LogoURL = params.LogoURL
		opts.Columns = append(opts.Columns, "logo_url")
	}

	if err := h.companyService.UpdateCompany(ctx, company, opts); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{"company": company}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	handle := c.Param("handle")

	if err := h.companyService.DeleteCompany(ctx, handle); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, echo.Map{"deleted": handle}))
}
