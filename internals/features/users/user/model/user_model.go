package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"monrepetiteur_backend/internals/constants"
)

// UserModel represents the users table. Phone is the login identifier
// (Ivorian format, normalized to +225XXXXXXXXXX); email is synthesized from
// the phone for accounts without a real one.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `gorm:"size:100;not null" json:"full_name" validate:"required,min=2,max=100"`
	Phone     string    `gorm:"size:20;uniqueIndex;not null" json:"phone" validate:"required"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	Password  string    `gorm:"not null" json:"-"`
	GoogleID  *string   `gorm:"size:255" json:"google_id,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null;default:'client'" json:"role"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleClient
	}
	return nil
}

func (u *UserModel) IsAdmin() bool {
	return u.Role == constants.RoleAdmin || u.Role == constants.RoleSuperAdmin
}
