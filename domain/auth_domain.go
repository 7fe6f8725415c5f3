package domain

import "errors"

var (
	MessageSuccessLogin  = "signed in successfully"
	MessageSuccessLogout = "signed out successfully"
	MessageSuccessMe     = "session is valid"
	MessageFailedLogin   = "failed to sign in"

	ErrInvalidCredentials = errors.New("invalid credentials")
)

const SessionCookieName = "admin-session"

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UserResponse struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}

	// Session is the validated admin identity attached to a request.
	Session struct {
		UserID string
		Role   string
		Token  string
	}
)
