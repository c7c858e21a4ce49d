package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID *uuid.UUID `gorm:"unique" json:"booking_id"`
	Amount    float64    `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency  string     `gorm:"size:3" json:"currency"`
	Provider  string     `gorm:"size:50;not null" json:"provider"`
	Status    string     `gorm:"size:20;not null" json:"status"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
