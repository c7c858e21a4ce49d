package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mwangi254/medibook/database"
	"github.com/mwangi254/medibook/models"
	"github.com/mwangi254/medibook/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errAvailabilityNotFound = errors.New("availability not found")
	errDayNotFound          = errors.New("no availability for that date")
	errSlotNotFound         = errors.New("slot not found")
	errSlotExhausted        = errors.New("no slots left")
)

type SlotPayload struct {
	SlotKey string `json:"slotKey" validate:"required"`
	Count   int    `json:"count" validate:"min=0"`
}

type DayPayload struct {
	Date  string        `json:"date" validate:"required,datetime=2006-01-02"`
	Slots []SlotPayload `json:"slots" validate:"dive"`
}

type SaveAvailabilityRequest struct {
	DoctorID     string       `json:"doctorId" validate:"required,uuid"`
	Availability []DayPayload `json:"availability" validate:"dive"`
}

// SaveAvailability replaces a doctor's whole day array. This is a deliberate full
// overwrite, not a merge: the editor always sends its complete local state, and
// days missing from the payload are dropped. Only positive-count slots persist.
func SaveAvailability(c *fiber.Ctx) error {
	var req SaveAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	doctorID, _ := uuid.Parse(req.DoctorID)

	for _, day := range req.Availability {
		for _, slot := range day.Slots {
			if !services.ValidSlotKey(slot.SlotKey) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false, "message": "Invalid slot key: " + slot.SlotKey,
				})
			}
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var availability models.Availability
		err := tx.Where("doctor_id = ?", doctorID).First(&availability).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			availability = models.Availability{DoctorID: doctorID}
			if err := tx.Create(&availability).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		dayIDs := tx.Model(&models.AvailabilityDay{}).Select("id").Where("availability_id = ?", availability.ID)
		if err := tx.Where("day_id IN (?)", dayIDs).Delete(&models.AvailabilitySlot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("availability_id = ?", availability.ID).Delete(&models.AvailabilityDay{}).Error; err != nil {
			return err
		}

		for _, day := range req.Availability {
			newDay := models.AvailabilityDay{
				AvailabilityID: availability.ID,
				Date:           day.Date,
			}
			for _, slot := range day.Slots {
				if slot.Count <= 0 {
					continue
				}
				newDay.Slots = append(newDay.Slots, models.AvailabilitySlot{
					SlotKey: slot.SlotKey,
					Count:   slot.Count,
				})
			}
			if err := tx.Create(&newDay).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save availability"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Availability saved"})
}

func loadAvailabilityDays(db *gorm.DB, doctorID uuid.UUID) ([]models.AvailabilityDay, error) {
	var availability models.Availability
	if err := db.Where("doctor_id = ?", doctorID).First(&availability).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAvailabilityNotFound
		}
		return nil, err
	}

	var days []models.AvailabilityDay
	err := db.Preload("Slots", func(db *gorm.DB) *gorm.DB {
		return db.Order("slot_key asc")
	}).
		Where("availability_id = ?", availability.ID).
		Order("date asc").
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []models.AvailabilityDay{}
	}
	return days, nil
}

// GetAvailability returns the full day array. A doctor who saved an empty array
// gets success with an empty list; a doctor who never saved gets a 404.
func GetAvailability(c *fiber.Ctx) error {
	doctorID, err := uuid.Parse(c.Params("doctorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid doctor id"})
	}

	days, err := loadAvailabilityDays(database.DB, doctorID)
	if err != nil {
		if errors.Is(err, errAvailabilityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Availability not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}

	return c.JSON(fiber.Map{"success": true, "availability": days})
}

type SetSlotRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	SlotKey string `json:"slotKey" validate:"required"`
	Count   int    `json:"count" validate:"min=0"`
}

// SetSlotCount sets one slot's count directly (not a decrement).
func SetSlotCount(c *fiber.Ctx) error {
	doctorID, err := uuid.Parse(c.Params("doctorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid doctor id"})
	}

	var req SetSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		slot, err := findSlotForUpdate(tx, doctorID, req.Date, req.SlotKey)
		if err != nil {
			return err
		}
		return tx.Model(slot).Update("count", req.Count).Error
	})
	if err != nil {
		return respondSlotError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Slot updated"})
}

type ReduceSlotRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	SlotKey string `json:"slotKey" validate:"required"`
}

// ReduceSlot takes exactly one unit off a slot's count. The row lock plus the
// conditional update serialize concurrent decrements per (doctor, date, slotKey):
// with one unit left, one caller wins and the rest see "no slots left".
func ReduceSlot(c *fiber.Ctx) error {
	doctorID, err := uuid.Parse(c.Params("doctorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid doctor id"})
	}

	var req ReduceSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return decrementSlot(tx, doctorID, req.Date, req.SlotKey)
	})
	if err != nil {
		return respondSlotError(c, err)
	}

	days, err := loadAvailabilityDays(database.DB, doctorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}

	return c.JSON(fiber.Map{"success": true, "availability": days})
}

// findSlotForUpdate walks availability → day → slot, locking the slot row.
// Each missing level reports its own not-found error.
func findSlotForUpdate(tx *gorm.DB, doctorID uuid.UUID, date, slotKey string) (*models.AvailabilitySlot, error) {
	var availability models.Availability
	if err := tx.Where("doctor_id = ?", doctorID).First(&availability).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAvailabilityNotFound
		}
		return nil, err
	}

	var day models.AvailabilityDay
	if err := tx.Where("availability_id = ? AND date = ?", availability.ID, date).First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errDayNotFound
		}
		return nil, err
	}

	var slot models.AvailabilitySlot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("day_id = ? AND slot_key = ?", day.ID, slotKey).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func decrementSlot(tx *gorm.DB, doctorID uuid.UUID, date, slotKey string) error {
	slot, err := findSlotForUpdate(tx, doctorID, date, slotKey)
	if err != nil {
		return err
	}
	if slot.Count <= 0 {
		return errSlotExhausted
	}

	res := tx.Model(&models.AvailabilitySlot{}).
		Where("id = ? AND count > 0", slot.ID).
		Update("count", gorm.Expr("count - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errSlotExhausted
	}
	return nil
}

func respondSlotError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errSlotExhausted):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": errSlotExhausted.Error()})
	case errors.Is(err, errAvailabilityNotFound),
		errors.Is(err, errDayNotFound),
		errors.Is(err, errSlotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
}

// GetDoctorCalendar projects one month of a doctor's availability into the
// calendar grid the booking screen renders.
func GetDoctorCalendar(c *fiber.Ctx) error {
	doctorID, err := uuid.Parse(c.Params("doctorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid doctor id"})
	}
	year, err := c.ParamsInt("year")
	if err != nil || year < 1970 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid year"})
	}
	month, err := c.ParamsInt("month")
	if err != nil || month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid month"})
	}

	days, err := loadAvailabilityDays(database.DB, doctorID)
	if err != nil && !errors.Is(err, errAvailabilityNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}

	byDate := make(map[string][]models.AvailabilitySlot, len(days))
	for _, day := range days {
		byDate[day.Date] = day.Slots
	}

	weeks := services.ProjectMonth(year, time.Month(month), byDate, time.Now(), c.Query("selected"))
	return c.JSON(fiber.Map{"success": true, "calendar": weeks})
}
