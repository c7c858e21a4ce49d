package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mwangi254/medibook/database"
	"github.com/mwangi254/medibook/models"
)

// ListDoctors returns doctors for the admin portal, optionally by status.
func ListDoctors(c *fiber.Ctx) error {
	query := database.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		if !models.DoctorStatus(status).Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid status filter"})
		}
		query = query.Where("status = ?", status)
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "doctors": doctors})
}

type DoctorStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved suspended"`
}

// SetDoctorStatus approves or suspends an account. Pending is the registration
// default and cannot be re-entered from here.
func SetDoctorStatus(c *fiber.Ctx) error {
	doctorID, err := uuid.Parse(c.Params("doctorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid doctor id"})
	}

	var req DoctorStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	status := models.DoctorStatus(req.Status)
	if !status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid status"})
	}

	var doctor models.Doctor
	if err := database.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Doctor not found"})
	}

	doctor.Status = status
	if err := database.DB.Save(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update doctor status"})
	}

	return c.JSON(fiber.Map{"success": true, "doctor": doctor})
}

// ListAllBookings is the admin-wide booking view, newest first.
func ListAllBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	if err := database.DB.Order("created_at desc").Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "bookings": bookings})
}
