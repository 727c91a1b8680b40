package auth

// TokenPayload represents the token request body.
type TokenPayload struct {
	Username string `json:"username" validate:"required,min=1,max=25"`
	Password string `json:"password" validate:"required,min=5,max=72"`
}

// RegisterPayload represents the registration request body. It is also used
// for the initial setup of the first admin.
type RegisterPayload struct {
	Username  string `json:"username" mod:"trim" validate:"required,min=1,max=25"`
	Password  string `json:"password" validate:"required,min=5,max=72"`
	FirstName string `json:"firstName" mod:"trim" validate:"required,min=1,max=30"`
	LastName  string `json:"lastName" mod:"trim" validate:"required,min=1,max=30"`
	Email     string `json:"email" mod:"trim" validate:"required,email,max=60"`
}

func (p RegisterPayload) options(role string) RegisterOptions {
	return RegisterOptions{
		Username:  p.Username,
		Password:  p.Password,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		RoleName:  role,
	}
}

// TokenResponse wraps an issued token.
type TokenResponse struct {
	Token string `json:"token"`
}

// StatusResponse represents the auth status response.
type StatusResponse struct {
	NeedsSetup bool `json:"needsSetup"`
}

// MeResponse represents the current user response.
type MeResponse struct {
	ID          int      `json:"id"`
	Username    string   `json:"username"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	IsAdmin     bool     `json:"isAdmin"`
	RoleName    string   `json:"roleName"`
	Permissions []string `json:"permissions"`
}
