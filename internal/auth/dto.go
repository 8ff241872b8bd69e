package auth

import "github.com/ardiansn/employee-management/internal"

// RegisterDTO carries a role field because older clients send one; the
// service ignores it and always provisions the user role. Admins are created
// by the seed command only.
type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the payload of register and login: the user plus a signed token.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func (d RegisterDTO) Validate() error {
	if d.Email == "" || d.Password == "" || d.Name == "" {
		return internal.NewValidationError("Email, password, and name are required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d LoginDTO) Validate() error {
	if d.Email == "" || d.Password == "" {
		return internal.NewValidationError("Email and password are required", internal.ErrCodeValidationFailed)
	}
	return nil
}
