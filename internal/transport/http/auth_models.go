package http

import "github.com/vistago/vistago-api/internal/domain"

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"login failed"`
}

// LoginRequest carries the credentials forwarded upstream.
type LoginRequest struct {
	Username string `json:"username" example:"emilys"`
	Password string `json:"password" example:"emilyspass"`
}

// RegisterRequest carries the registration fields. The submitted credentials
// are the ones subsequently authenticated.
type RegisterRequest struct {
	Username  string `json:"username" example:"traveler42"`
	Password  string `json:"password" example:"StrongPass!23"`
	Email     string `json:"email" example:"traveler@example.com"`
	FirstName string `json:"firstName" example:"Alex"`
	LastName  string `json:"lastName" example:"Morgan"`
}

// AuthUser is the sanitized user representation returned by auth endpoints.
type AuthUser struct {
	ID        int64  `json:"id" example:"1"`
	Username  string `json:"username" example:"emilys"`
	Email     string `json:"email" example:"emily.johnson@x.dummyjson.com"`
	FirstName string `json:"first_name" example:"Emily"`
	LastName  string `json:"last_name" example:"Johnson"`
	Gender    string `json:"gender" example:"female"`
	Image     string `json:"image" example:"https://dummyjson.com/icon/emilys/128"`
}

// AuthSessionResponse is returned by login and register.
type AuthSessionResponse struct {
	Token string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  AuthUser `json:"user"`
}

func toAuthUser(u domain.User) AuthUser {
	return AuthUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Gender:    u.Gender,
		Image:     u.Image,
	}
}
