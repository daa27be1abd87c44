// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq represents the request body for the /signup endpoint.
// It uses Gin's binding tags for validation (required, email format, field lengths).
// Password strength and username format are enforced by the usecase.
type SignupReq struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginReq represents the request body for the /login endpoint.
// Identifier accepts either an email address or a username.
type LoginReq struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// UpdateProfileReq represents the request body for PUT /me.
type UpdateProfileReq struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ChangePasswordReq represents the request body for PUT /me/password.
type ChangePasswordReq struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}
