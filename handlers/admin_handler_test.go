package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func registerDoctor(t *testing.T, app *fiber.App) (id string) {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/v1/auth/doctor/register", "", map[string]any{
		"full_name": "Dr. Test",
		"email":     fmt.Sprintf("dr-%s@test.com", uuid.New().String()[:8]),
		"password":  "secret123",
		"specialty": "Cardiology",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register doctor: status %d, body %v", resp.StatusCode, body)
	}
	doctor := body["doctor"].(map[string]any)
	if doctor["status"] != "pending" {
		t.Fatalf("new doctor should be pending, got %v", doctor["status"])
	}
	return doctor["id"].(string)
}

func TestDoctorApprovalFlow(t *testing.T) {
	app := setup(t)
	adminToken := makeToken(t, uuid.New().String(), "admin")
	doctorID := registerDoctor(t, app)

	// pending doctors are invisible to patients
	_, listing := doJSON(t, app, "GET", "/api/v1/doctors", "", nil)
	for _, d := range listing["doctors"].([]any) {
		if d.(map[string]any)["id"] == doctorID {
			t.Fatal("pending doctor leaked into public listing")
		}
	}

	resp, body := doJSON(t, app, "PATCH", "/api/v1/admin/doctors/"+doctorID+"/status", adminToken, map[string]any{
		"status": "approved",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve: status %d, body %v", resp.StatusCode, body)
	}
	if body["doctor"].(map[string]any)["status"] != "approved" {
		t.Fatal("doctor not approved")
	}

	_, listing = doJSON(t, app, "GET", "/api/v1/doctors", "", nil)
	found := false
	for _, d := range listing["doctors"].([]any) {
		if d.(map[string]any)["id"] == doctorID {
			found = true
		}
	}
	if !found {
		t.Fatal("approved doctor missing from public listing")
	}
}

func TestSetDoctorStatusRejectsUnknownState(t *testing.T) {
	app := setup(t)
	adminToken := makeToken(t, uuid.New().String(), "admin")
	doctorID := registerDoctor(t, app)

	for _, status := range []string{"pending", "banned", "ACTIVE", ""} {
		resp, _ := doJSON(t, app, "PATCH", "/api/v1/admin/doctors/"+doctorID+"/status", adminToken, map[string]any{
			"status": status,
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status %q: expected 400, got %d", status, resp.StatusCode)
		}
	}
}

func TestListDoctorsStatusFilter(t *testing.T) {
	app := setup(t)
	adminToken := makeToken(t, uuid.New().String(), "admin")
	registerDoctor(t, app)

	resp, body := doJSON(t, app, "GET", "/api/v1/admin/doctors?status=pending", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list pending: status %d", resp.StatusCode)
	}
	for _, d := range body["doctors"].([]any) {
		if d.(map[string]any)["status"] != "pending" {
			t.Fatal("status filter leaked other states")
		}
	}

	resp, _ = doJSON(t, app, "GET", "/api/v1/admin/doctors?status=bogus", adminToken, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bogus filter: expected 400, got %d", resp.StatusCode)
	}
}
