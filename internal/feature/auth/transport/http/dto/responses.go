package dto

import "shop_backend/internal/feature/auth/domain/entity"

// UserResponse is the public representation of a user account.
// The password hash is never exposed.
type UserResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

// ToUserResponse maps a user entity to its public representation.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Username:   u.Username,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
	}
}
