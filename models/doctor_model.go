package models

import (
	"time"

	"github.com/google/uuid"
)

// DoctorStatus is a closed set; free-form status strings never reach the database.
type DoctorStatus string

const (
	DoctorPending   DoctorStatus = "pending"
	DoctorApproved  DoctorStatus = "approved"
	DoctorSuspended DoctorStatus = "suspended"
)

func (s DoctorStatus) Valid() bool {
	switch s {
	case DoctorPending, DoctorApproved, DoctorSuspended:
		return true
	}
	return false
}

type Doctor struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName  string       `gorm:"size:255;not null" json:"full_name"`
	Email     string       `gorm:"size:255;not null;unique" json:"email"`
	Password  string       `gorm:"not null" json:"-"`
	Phone     *string      `gorm:"size:20" json:"phone,omitempty"`
	Specialty string       `gorm:"size:100;not null" json:"specialty"`
	Bio       *string      `gorm:"type:text" json:"bio,omitempty"`
	Status    DoctorStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	PhotoURL    *string `gorm:"size:255" json:"photo_url,omitempty"`
	DocumentURL *string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
