package dto

// RegisterRequest payload for new membership requests.
type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	RegistrationNo string `json:"registrationNo"`
	Year           string `json:"year"`
	Domain         string `json:"domain"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ActivateRequest payload for account activation.
type ActivateRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// RequestResetRequest payload for starting a password reset.
type RequestResetRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload for completing a password reset.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status"`
}
