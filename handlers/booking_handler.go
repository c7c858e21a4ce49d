package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mwangi254/medibook/database"
	"github.com/mwangi254/medibook/models"
	"github.com/mwangi254/medibook/notifications"
	"github.com/mwangi254/medibook/services"
	"github.com/mwangi254/medibook/utils"
	ws "github.com/mwangi254/medibook/websocket"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	PatientName  string `json:"patientName" validate:"required"`
	PatientPhone string `json:"patientPhone" validate:"required,min=7"`
	DoctorID     string `json:"doctorId" validate:"required,uuid"`
	DoctorName   string `json:"doctorName" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	SlotKey      string `json:"slot" validate:"required"`
	TimeLabel    string `json:"time"`
	BookingID    string `json:"bookingId"`
	Checked      bool   `json:"checked"`
}

// CreateBooking consumes one unit of the slot and records the booking and its
// simulated payment in a single transaction, so a stored booking always has a
// matching decrement. Push and dashboard notifications run after commit and are
// best-effort.
func CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	doctorID, _ := uuid.Parse(req.DoctorID)

	price, err := services.SlotPrice(req.SlotKey)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid slot key: " + req.SlotKey})
	}

	bookingRef := req.BookingID
	if bookingRef == "" {
		bookingRef = utils.GenerateBookingID()
	}

	var booking models.Booking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := decrementSlot(tx, doctorID, req.Date, req.SlotKey); err != nil {
			return err
		}

		booking = models.Booking{
			BookingID:    bookingRef,
			PatientName:  req.PatientName,
			PatientPhone: req.PatientPhone,
			DoctorID:     doctorID,
			DoctorName:   req.DoctorName,
			Date:         req.Date,
			SlotKey:      req.SlotKey,
			TimeLabel:    req.TimeLabel,
			Checked:      req.Checked,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		payment := models.Payment{
			BookingID: &booking.ID,
			Amount:    float64(price),
			Currency:  "INR",
			Provider:  "simulated",
			Status:    "succeeded",
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return respondSlotError(c, err)
	}

	go notifyPatient(booking)
	ws.Notify(&ws.BookingEvent{
		Type:      "booking.created",
		DoctorID:  booking.DoctorID,
		BookingID: booking.BookingID,
		Date:      booking.Date,
		SlotKey:   booking.SlotKey,
		Patient:   booking.PatientName,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "booking": booking})
}

func notifyPatient(booking models.Booking) {
	var patient models.User
	if err := database.DB.Where("phone = ?", booking.PatientPhone).First(&patient).Error; err != nil {
		log.Printf("No patient account for %s, skipping push", booking.PatientPhone)
		return
	}
	if patient.PushToken == nil {
		return
	}
	notifications.SendPush(
		*patient.PushToken,
		"Booking Confirmed",
		"Your appointment with "+booking.DoctorName+" on "+booking.Date+" at "+booking.TimeLabel+" is confirmed.",
		map[string]any{"bookingId": booking.BookingID},
	)
}

// GetBookings lists every booking, newest first.
func GetBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	if err := database.DB.Order("created_at desc").Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "bookings": bookings})
}

// GetBookingsByPhone lists a patient's own history, newest first.
func GetBookingsByPhone(c *fiber.Ctx) error {
	phone := c.Params("phone")

	var bookings []models.Booking
	if err := database.DB.Where("patient_phone = ?", phone).Order("created_at desc").Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "bookings": bookings})
}

type CheckBookingRequest struct {
	Checked bool `json:"checked"`
}

// MarkBookingChecked flips the check-in flag. Re-checking an already checked
// booking is a no-op success. Dismissing a booking is a client-side concern and
// never reaches this handler.
func MarkBookingChecked(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid booking id"})
	}

	var req CheckBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}

	// Checked is terminal: only the false→true transition writes anything.
	if req.Checked && !booking.Checked {
		booking.Checked = true
		if err := database.DB.Save(&booking).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update booking"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "booking": booking})
}

// GetNotificationFeed returns a patient's open upcoming bookings: not yet
// checked in, dated today or later.
func GetNotificationFeed(c *fiber.Ctx) error {
	phone := c.Params("phone")
	today := time.Now().Format("2006-01-02")

	var bookings []models.Booking
	err := database.DB.
		Where("patient_phone = ? AND checked = ? AND date >= ?", phone, false, today).
		Order("date asc").
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "notifications": bookings})
}
