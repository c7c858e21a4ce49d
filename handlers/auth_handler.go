package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	config "github.com/mwangi254/medibook/configs"
	"github.com/mwangi254/medibook/database"
	"github.com/mwangi254/medibook/models"
	"github.com/mwangi254/medibook/notifications"
	"github.com/mwangi254/medibook/services"
	"github.com/mwangi254/medibook/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

const otpTTL = 5 * time.Minute

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Phone    string `json:"phone" validate:"required,min=7"`
	Pin      string `json:"pin" validate:"required,len=4,numeric"`
}

func RegisterPatient(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	hashedPin, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to hash PIN"})
	}

	newUser := models.User{
		FullName: req.FullName,
		Phone:    req.Phone,
		Pin:      string(hashedPin),
		Role:     "patient",
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Phone number already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "user": newUser})
}

type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=7"`
}

func RequestOTP(c *fiber.Ctx) error {
	var req RequestOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "No account for that phone number"})
	}

	code := utils.GenerateOTPCode()
	services.OTP.Put(req.Phone, code, otpTTL)

	if user.PushToken != nil {
		go notifications.SendPush(*user.PushToken, "Your login code", "Use code "+code+" to sign in.", nil)
	}
	log.Printf("OTP issued for %s", req.Phone)

	resp := fiber.Map{"success": true, "message": "OTP sent"}
	if config.Config("APP_ENV") != "production" {
		resp["otp"] = code
	}
	return c.JSON(resp)
}

type VerifyOTPRequest struct {
	Phone     string  `json:"phone" validate:"required,min=7"`
	Code      string  `json:"code" validate:"required,len=6,numeric"`
	PushToken *string `json:"push_token,omitempty"`
}

func VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	code, ok := services.OTP.Get(req.Phone)
	if !ok || code != req.Code {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid or expired code"})
	}
	services.OTP.Delete(req.Phone)

	var user models.User
	if err := database.DB.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "No account for that phone number"})
	}

	if req.PushToken != nil && *req.PushToken != "" {
		user.PushToken = req.PushToken
		database.DB.Save(&user)
	}

	token, err := signToken(user.ID.String(), user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"success": true, "token": token, "user": user})
}

type DoctorRegisterRequest struct {
	FullName  string `json:"full_name" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Specialty string `json:"specialty" validate:"required"`
	Bio       string `json:"bio"`
}

// RegisterDoctor creates a pending account; the doctor cannot take bookings
// until an admin approves it.
func RegisterDoctor(c *fiber.Ctx) error {
	var req DoctorRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to hash password"})
	}

	newDoctor := models.Doctor{
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Specialty: req.Specialty,
		Status:    models.DoctorPending,
	}
	if req.Bio != "" {
		newDoctor.Bio = &req.Bio
	}

	if err := database.DB.Create(&newDoctor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Email already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create doctor"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "doctor": newDoctor})
}

type DoctorLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func LoginDoctor(c *fiber.Ctx) error {
	var req DoctorLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var doctor models.Doctor
	if err := database.DB.Where("email = ?", req.Email).First(&doctor).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid email or password"})
	}

	if doctor.Status == models.DoctorSuspended {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Account suspended"})
	}

	token, err := signToken(doctor.ID.String(), "doctor")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"success": true, "token": token, "doctor": doctor})
}

// AdminLogin signs in the seeded admin with phone + PIN.
func AdminLogin(c *fiber.Ctx) error {
	type AdminLoginRequest struct {
		Phone string `json:"phone" validate:"required"`
		Pin   string `json:"pin" validate:"required"`
	}

	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("phone = ? AND role = ?", req.Phone, "admin").First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid credentials"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Pin), []byte(req.Pin)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid credentials"})
	}

	token, err := signToken(user.ID.String(), "admin")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"success": true, "token": token, "user": user})
}

func signToken(subjectID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": subjectID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}
