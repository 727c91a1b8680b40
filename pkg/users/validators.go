package users

// CreateUserPayload represents the request body for creating a user.
type CreateUserPayload struct {
	Username  string `json:"username" mod:"trim" validate:"required,min=1,max=25"`
	Password  string `json:"password" validate:"required,min=5,max=72"`
	FirstName string `json:"firstName" mod:"trim" validate:"required,min=1,max=30"`
	LastName  string `json:"lastName" mod:"trim" validate:"required,min=1,max=30"`
	Email     string `json:"email" mod:"trim" validate:"required,email,max=60"`
	Role      string `json:"role" default:"viewer" validate:"oneof=admin viewer"`
}

// UpdateUserPayload represents the request body for updating a user. Role
// and IsActive may only be changed by callers with users:write.
type UpdateUserPayload struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=1,max=30"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=60"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=admin viewer"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// ResetPasswordPayload represents the request body for resetting a password.
type ResetPasswordPayload struct {
	CurrentPassword *string `json:"currentPassword,omitempty"` // Required when resetting your own password
	NewPassword     string  `json:"newPassword" validate:"required,min=5,max=72"`
}

// ListUsersQuery represents the query parameters for listing users.
type ListUsersQuery struct {
	Limit  int `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=100"`
	Offset int `query:"offset" json:"offset,omitempty" validate:"min=0"`
}
