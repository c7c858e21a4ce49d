package jobs

import (
	"log"
	"time"

	"github.com/mwangi254/medibook/database"
	"github.com/mwangi254/medibook/models"
	"github.com/mwangi254/medibook/notifications"
	"github.com/mwangi254/medibook/services"
)

// SendBookingReminders pushes a reminder to patients whose appointment starts
// in roughly an hour. Runs every 5 minutes, so the window is 60-65 minutes out.
func SendBookingReminders() {
	log.Println("Running job: SendBookingReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	today := now.Format("2006-01-02")
	var todaysBookings []models.Booking
	err := database.DB.
		Where("date = ? AND checked = ?", today, false).
		Find(&todaysBookings).Error
	if err != nil {
		log.Printf("Error checking for upcoming bookings: %v", err)
		return
	}

	for _, booking := range todaysBookings {
		_, hhmm, err := services.ParseSlotKey(booking.SlotKey)
		if err != nil {
			continue
		}
		start, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+hhmm, time.Local)
		if err != nil {
			continue
		}
		if start.Before(lowerBound) || start.After(upperBound) {
			continue
		}

		var patient models.User
		if err := database.DB.Where("phone = ?", booking.PatientPhone).First(&patient).Error; err != nil {
			continue
		}
		if patient.PushToken == nil {
			continue
		}

		log.Printf("Sending reminder for booking %s", booking.BookingID)
		go notifications.SendPush(
			*patient.PushToken,
			"Appointment Reminder",
			"Your appointment with "+booking.DoctorName+" starts at "+hhmm+".",
			map[string]any{"bookingId": booking.BookingID},
		)
	}
}
