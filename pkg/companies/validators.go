package companies

type CreateCompanyPayload struct {
	Handle       string  `json:"handle" mod:"trim" validate:"required,max=25,handle"`
	Name         string  `json:"name" mod:"trim" validate:"required,max=100"`
	Description  string  `json:"description" mod:"trim" validate:"max=1000"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

// UpdateCompanyPayload carries the mutable company fields. The handle is
// fixed once created.
type UpdateCompanyPayload struct {
	Name         *string `json:"name,omitempty" mod:"trim" validate:"omitempty,min=1,max=100"`
	Description  *string `json:"description,omitempty" mod:"trim" validate:"omitempty,max=1000"`
	NumEmployees *int    `json:"numEmployees,omitempty" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl,omitempty" validate:"omitempty,url"`
}

type ListCompaniesQuery struct {
	NameLike     *string `query:"nameLike" json:"nameLike,omitempty" validate:"omitempty,max=100"`
	MinEmployees *int    `query:"minEmployees" json:"minEmployees,omitempty" validate:"omitempty,min=0"`
	MaxEmployees *int    `query:"maxEmployees" json:"maxEmployees,omitempty" validate:"omitempty,min=0"`
}
