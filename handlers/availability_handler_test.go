package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestGetAvailabilityNotFound(t *testing.T) {
	app := setup(t)

	resp, body := doJSON(t, app, "GET", "/api/v1/doctor-availability/"+newDoctorID(), "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body["success"])
	}
}

func TestSaveAvailabilityOverwrites(t *testing.T) {
	app := setup(t)
	doctorID := newDoctorID()
	token := makeToken(t, doctorID, "doctor")

	saveAvailability(t, app, doctorID, token, []map[string]any{
		day("2030-03-10", slot("morning-09:00", 2)),
		day("2030-03-11", slot("evening-18:30", 1)),
	})
	saveAvailability(t, app, doctorID, token, []map[string]any{
		day("2030-03-12", slot("afternoon-14:00", 4)),
	})

	resp, body := doJSON(t, app, "GET", "/api/v1/doctor-availability/"+doctorID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	days := decodeDays(t, body)
	if len(days) != 1 {
		t.Fatalf("expected exactly the new day array, got %d days", len(days))
	}
	if days[0].Date != "2030-03-12" || len(days[0].Slots) != 1 || days[0].Slots[0].Count != 4 {
		t.Fatalf("unexpected stored state: %+v", days)
	}
}

func TestSaveEmptyAvailabilityPersistsDocument(t *testing.T) {
	app := setup(t)
	doctorID := newDoctorID()
	token := makeToken(t, doctorID, "doctor")

	saveAvailability(t, app, doctorID, token, []map[string]any{})

	resp, body := doJSON(t, app, "GET", "/api/v1/doctor-availability/"+doctorID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for saved-but-empty availability, got %d", resp.StatusCode)
	}
	if days := decodeDays(t, body); len(days) != 0 {
		t.Fatalf("expected empty day list, got %+v", days)
	}
}

func TestSaveAvailabilityRejectsUnknownSlotKey(t *testing.T) {
	app := setup(t)
	doctorID := newDoctorID()
	token := makeToken(t, doctorID, "doctor")

	resp, _ := doJSON(t, app, "POST", "/api/v1/doctor-availability", token, map[string]any{
		"doctorId": doctorID,
		"availability": []map[string]any{
			day("2030-03-10", slot("midnight-02:00", 1)),
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for off-table slot key, got %d", resp.StatusCode)
	}
}

func TestSetSlotCount(t *testing.T) {
	app := setup(t)
	doctorID := newDoctorID()
	token := makeToken(t, doctorID, "doctor")

	saveAvailability(t, app, doctorID, token, []map[string]any{
		day("2030-03-10", slot("morning-09:00", 2)),
	})

	resp, _ := doJSON(t, app, "PATCH", "/api/v1/doctor-availability/"+doctorID+"/slot", token, map[string]any{
		"date": "2030-03-10", "slotKey": "morning-09:00", "count": 5,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	_, body := doJSON(t, app, "GET", "/api/v1/doctor-availability/"+doctorID, "", nil)
	days := decodeDays(t, body)
	if days[0].Slots[0].Count != 5 {
		t.Fatalf("expected count 5, got %d", days[0].Slots[0].Count)
	}

	resp, _ = doJSON(t, app, "PATCH", "/api/v1/doctor-availability/"+doctorID+"/slot", token, map[string]any{
		"date": "2030-03-10", "slotKey": "morning-10:00", "count": 5,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing slot, got %d", resp.StatusCode)
	}
}

// Scenario: a slot starts at 2, two decrements drain it, the third reports
// exhaustion and the count stays at 0.
func TestReduceSlotDrainsToZero(t *testing.T) {
	app := setup(t)
	doctorID := newDoctorID()
	token := makeToken(t, doctorID, "doctor")

	saveAvailability(t, app, doctorID, token, []map[string]any{
		day("2030-03-10", slot("morning-09:00", 2)),
	})

	reduce := func() (*http.Response, map[string]any) {
		return doJSON(t, app, "POST", "/api/v1/doctor-availability/"+doctorID+"/reduce-slot", token, map[string]any{
			"date": "2030-03-10", "slotKey": "morning-09:00",
		})
	}

	resp, body := reduce()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first reduce: expected 200, got %d", resp.StatusCode)
	}
	if days := decodeDays(t, body); days[0].Slots[0].Count != 1 {
		t.Fatalf("first reduce: expected count 1, got %d", days[0].Slots[0].Count)
	}

	resp, body = reduce()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second reduce: expected 200, got %d", resp.StatusCode)
	}
	if days := decodeDays(t, body); days[0].Slots[0].Count != 0 {
		t.Fatalf("second reduce: expected count 0, got %d", days[0].Slots[0].Count)
	}

	resp, body = reduce()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("third reduce: expected 400, got %d", resp.StatusCode)
	}
	if body["message"] != "no slots left" {
		t.Fatalf("third reduce: expected exhausted-resource message, got %v", body["message"])
	}

	_, body = doJSON(t, app, "GET", "/api/v1/doctor-availability/"+doctorID, "", nil)
	if days := decodeDays(t, body); days[0].Slots[0].Count != 0 {
		t.Fatalf("count went below zero: %d", days[0].Slots[0].Count)
	}
}

func TestReduceSlotNotFoundVariants(t *testing.T) {
	app := setup(t)
	doctorID := newDoctorID()
	token := makeToken(t, doctorID, "doctor")

	saveAvailability(t, app, doctorID, token, []map[string]any{
		day("2030-03-10", slot("morning-09:00", 1)),
	})

	cases := []struct {
		name    string
		doctor  string
		date    string
		slotKey string
	}{
		{name: "unknown doctor", doctor: newDoctorID(), date: "2030-03-10", slotKey: "morning-09:00"},
		{name: "unknown date", doctor: doctorID, date: "2030-03-11", slotKey: "morning-09:00"},
		{name: "unknown slot", doctor: doctorID, date: "2030-03-10", slotKey: "morning-09:30"},
	}

	for _, c := range cases {
		resp, _ := doJSON(t, app, "POST", "/api/v1/doctor-availability/"+c.doctor+"/reduce-slot", token, map[string]any{
			"date": c.date, "slotKey": c.slotKey,
		})
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", c.name, resp.StatusCode)
		}
	}
}

// With one unit left and two concurrent decrements, exactly one may win.
func TestReduceSlotConcurrent(t *testing.T) {
	app := setup(t)
	doctorID := newDoctorID()
	token := makeToken(t, doctorID, "doctor")

	saveAvailability(t, app, doctorID, token, []map[string]any{
		day("2030-03-10", slot("morning-09:00", 1)),
	})

	const attempts = 2
	statuses := make([]int, attempts)
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest("POST", "/api/v1/doctor-availability/"+doctorID+"/reduce-slot",
				strings.NewReader(`{"date":"2030-03-10","slotKey":"morning-09:00"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req, -1)
			if err != nil {
				errs[i] = err
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			t.Fatalf("concurrent request: %v", err)
		}
	}

	wins, exhausted := 0, 0
	for _, s := range statuses {
		switch s {
		case http.StatusOK:
			wins++
		case http.StatusBadRequest:
			exhausted++
		default:
			t.Fatalf("unexpected status %d", s)
		}
	}
	if wins != 1 || exhausted != 1 {
		t.Fatalf("expected exactly one winner and one exhausted, got %d/%d", wins, exhausted)
	}

	_, body := doJSON(t, app, "GET", "/api/v1/doctor-availability/"+doctorID, "", nil)
	if days := decodeDays(t, body); days[0].Slots[0].Count != 0 {
		t.Fatalf("expected final count 0, got %d", days[0].Slots[0].Count)
	}
}
