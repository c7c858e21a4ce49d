package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mwangi254/medibook/database"
	"github.com/mwangi254/medibook/models"
	"github.com/mwangi254/medibook/routes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setup(t *testing.T) *fiber.App {
	t.Helper()
	_ = godotenv.Load("../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "test-secret")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	database.DB = db

	err = db.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Availability{},
		&models.AvailabilityDay{},
		&models.AvailabilitySlot{},
		&models.Booking{},
		&models.Payment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.DoctorRoutes(app)
	routes.AvailabilityRoutes(app)
	routes.BookingRoutes(app)
	routes.AdminRoutes(app)
	return app
}

func makeToken(t *testing.T, subjectID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": subjectID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	var decoded map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("%s %s: bad JSON %q: %v", method, path, string(raw), err)
		}
	}
	return resp, decoded
}

func newDoctorID() string {
	return uuid.New().String()
}

type slotResp struct {
	SlotKey string `json:"slotKey"`
	Count   int    `json:"count"`
}

type dayResp struct {
	Date  string     `json:"date"`
	Slots []slotResp `json:"slots"`
}

func decodeDays(t *testing.T, body map[string]any) []dayResp {
	t.Helper()
	raw, err := json.Marshal(body["availability"])
	if err != nil {
		t.Fatalf("re-marshal availability: %v", err)
	}
	var days []dayResp
	if err := json.Unmarshal(raw, &days); err != nil {
		t.Fatalf("decode availability: %v", err)
	}
	return days
}

func saveAvailability(t *testing.T, app *fiber.App, doctorID, doctorToken string, days []map[string]any) {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/v1/doctor-availability", doctorToken, map[string]any{
		"doctorId":     doctorID,
		"availability": days,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save availability: status %d, body %v", resp.StatusCode, body)
	}
}

func day(date string, slots ...map[string]any) map[string]any {
	return map[string]any{"date": date, "slots": slots}
}

func slot(key string, count int) map[string]any {
	return map[string]any{"slotKey": key, "count": count}
}
