package jobs

import "github.com/jobly/jobly/pkg/models"

type CreateJobPayload struct {
	Title         string         `json:"title" mod:"trim" validate:"required,max=100"`
	Salary        *int           `json:"salary,omitempty" validate:"omitempty,min=0"`
	Equity        *models.Equity `json:"equity,omitempty" validate:"omitempty,equity"`
	CompanyHandle string         `json:"companyHandle" mod:"trim" validate:"required,max=25"`
}

// UpdateJobPayload carries the mutable job fields. The id and company are
// fixed once created.
type UpdateJobPayload struct {
	Title  *string        `json:"title,omitempty" mod:"trim" validate:"omitempty,min=1,max=100"`
	Salary *int           `json:"salary,omitempty" validate:"omitempty,min=0"`
	Equity *models.Equity `json:"equity,omitempty" validate:"omitempty,equity"`
}

type ListJobsQuery struct {
	Title     *string `query:"title" json:"title,omitempty" validate:"omitempty,max=100"`
	MinSalary *int    `query:"minSalary" json:"minSalary,omitempty" validate:"omitempty,min=0"`
	HasEquity bool    `query:"hasEquity" json:"hasEquity"`
}
