package models

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserModel represents an account holder.
type UserModel struct {
	Base
	Name                 string     `json:"name"      gorm:"not null"`
	Email                string     `json:"email"     gorm:"uniqueIndex;not null"`
	Password             string     `json:"-"         gorm:"not null"`
	Role                 string     `json:"role"      gorm:"not null;default:user"`
	IsBlocked            bool       `json:"isBlocked" gorm:"not null;default:false"`
	ResetPasswordToken   string     `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
}

func (UserModel) TableName() string { return "users" }

// PublicUser is the projection returned by auth and admin endpoints.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsBlocked bool      `json:"isBlocked"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the user without credential fields.
func (u *UserModel) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsBlocked: u.IsBlocked,
		CreatedAt: u.CreatedAt,
	}
}
