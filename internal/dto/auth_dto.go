package dto

// LoginRequest represents the shared-password login body
type LoginRequest struct {
	Password string `json:"password" example:"changeme"`
}

// AuthStatusResponse reports whether the caller holds a live session
type AuthStatusResponse struct {
	Authenticated bool `json:"authenticated" example:"true"`
}
