package dto

// RegisterRequest represents the API request for account signup
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the API request for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the session token and the authenticated account
type AuthResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}
