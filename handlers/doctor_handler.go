package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangi254/medibook/database"
	"github.com/mwangi254/medibook/models"
	"gorm.io/gorm"
)

// ListApprovedDoctors is the public discovery listing.
func ListApprovedDoctors(c *fiber.Ctx) error {
	query := database.DB.Where("status = ?", models.DoctorApproved)
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}

	var doctors []models.Doctor
	if err := query.Order("full_name asc").Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "doctors": doctors})
}

func GetDoctorProfile(c *fiber.Ctx) error {
	doctorID, err := uuid.Parse(c.Params("doctorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid doctor id"})
	}

	var doctor models.Doctor
	if err := database.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Doctor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "doctor": doctor})
}

func doctorIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	return uuid.Parse(claims["user_id"].(string))
}

func GetMyDoctorProfile(c *fiber.Ctx) error {
	doctorID, err := doctorIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid token subject"})
	}

	var doctor models.Doctor
	if err := database.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Doctor not found"})
	}
	return c.JSON(fiber.Map{"success": true, "doctor": doctor})
}

// GetMyDoctorBookings feeds the appointments dashboard. Open bookings first so
// pending check-ins surface at the top.
func GetMyDoctorBookings(c *fiber.Ctx) error {
	doctorID, err := doctorIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid token subject"})
	}

	var bookings []models.Booking
	err = database.DB.
		Where("doctor_id = ?", doctorID).
		Order("checked asc, created_at desc").
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "bookings": bookings})
}

// GetMyPatients lists the distinct patients this doctor has checked in.
func GetMyPatients(c *fiber.Ctx) error {
	doctorID, err := doctorIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid token subject"})
	}

	type patientRow struct {
		PatientName  string `json:"patientName"`
		PatientPhone string `json:"patientPhone"`
	}

	var patients []patientRow
	err = database.DB.Model(&models.Booking{}).
		Select("DISTINCT patient_name, patient_phone").
		Where("doctor_id = ? AND checked = ?", doctorID, true).
		Scan(&patients).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "patients": patients})
}
