package dto

import (
	"time"

	"github.com/google/uuid"

	"monrepetiteur_backend/internals/features/users/user/model"
)

type ToggleActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=super_admin admin client prestataire"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModel(u *model.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
