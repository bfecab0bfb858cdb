package models

// Request body for `/auth/register`
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Request body for `/auth/request-otp`
type RequestOTPRequest struct {
	Email string `json:"email"`
}

// Request body for `/auth/verify-otp`
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Response body for `/auth/register` and `/auth/request-otp`
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type Session struct {
	Token  string `json:"token"`
	UserID string `json:"_id"`
}

// Response body for `/auth/verify-otp`
type VerifyOTPResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Data    Session `json:"data"`
}
