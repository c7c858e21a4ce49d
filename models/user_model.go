package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Phone    string    `gorm:"size:20;not null;unique" json:"phone"`
	Pin      string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'patient'" json:"role"`

	PushToken *string `gorm:"size:255" json:"push_token,omitempty"`

	Email *string `gorm:"size:255;unique" json:"email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
