package models

import (
	"time"

	"github.com/google/uuid"
)

// Availability is the per-doctor inventory document. The parent row exists even when
// every day has been cleared, so "saved but empty" and "never saved" stay distinct.
type Availability struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DoctorID uuid.UUID `gorm:"not null;unique" json:"doctor_id"`

	Days []AvailabilityDay `gorm:"foreignkey:AvailabilityID" json:"days"`

	Doctor Doctor `gorm:"foreignkey:DoctorID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type AvailabilityDay struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	AvailabilityID uuid.UUID `gorm:"not null;uniqueIndex:idx_availability_date" json:"-"`
	Date           string    `gorm:"size:10;not null;uniqueIndex:idx_availability_date" json:"date"`

	Slots []AvailabilitySlot `gorm:"foreignkey:DayID" json:"slots"`
}

type AvailabilitySlot struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	DayID   uuid.UUID `gorm:"not null;uniqueIndex:idx_day_slot" json:"-"`
	SlotKey string    `gorm:"size:20;not null;uniqueIndex:idx_day_slot" json:"slotKey"`
	Count   int       `gorm:"not null;default:0;check:count >= 0" json:"count"`
}
