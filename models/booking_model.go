package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID string    `gorm:"size:12;not null;index" json:"bookingId"`

	PatientName  string `gorm:"size:255;not null" json:"patientName"`
	PatientPhone string `gorm:"size:20;not null;index" json:"patientPhone"`

	DoctorID   uuid.UUID `gorm:"not null;index" json:"doctorId"`
	DoctorName string    `gorm:"size:255;not null" json:"doctorName"`

	Date      string `gorm:"size:10;not null" json:"date"`
	SlotKey   string `gorm:"size:20;not null" json:"slot"`
	TimeLabel string `gorm:"size:20" json:"time"`

	Checked bool `gorm:"not null;default:false" json:"checked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
