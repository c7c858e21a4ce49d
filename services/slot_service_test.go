package services

import (
	"reflect"
	"testing"
)

func TestPeriodTimes(t *testing.T) {
	cases := []struct {
		period   Period
		expected []string
	}{
		{
			period:   Morning,
			expected: []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			period:   Afternoon,
			expected: []string{"14:00", "14:30", "15:00", "15:30", "16:00", "16:30"},
		},
		{
			period:   Evening,
			expected: []string{"18:00", "18:30", "19:00", "19:30", "20:00", "20:30"},
		},
	}

	for _, c := range cases {
		times := PeriodTimes(c.period)
		if !reflect.DeepEqual(times, c.expected) {
			t.Fatalf("period %s: expected %v, got %v", c.period, c.expected, times)
		}
	}
}

func TestAllSlotKeys(t *testing.T) {
	keys := AllSlotKeys()
	if len(keys) != 18 {
		t.Fatalf("expected 18 slot keys, got %d", len(keys))
	}
	if keys[0] != "morning-09:00" {
		t.Fatalf("expected first key morning-09:00, got %s", keys[0])
	}
	if keys[len(keys)-1] != "evening-20:30" {
		t.Fatalf("expected last key evening-20:30, got %s", keys[len(keys)-1])
	}
}

func TestValidSlotKey(t *testing.T) {
	cases := []struct {
		key   string
		valid bool
	}{
		{key: "morning-09:00", valid: true},
		{key: "afternoon-16:30", valid: true},
		{key: "evening-18:30", valid: true},
		{key: "morning-9:00", valid: false},
		{key: "morning-12:00", valid: false},
		{key: "night-18:00", valid: false},
		{key: "evening-21:00", valid: false},
		{key: "", valid: false},
	}

	for _, c := range cases {
		if got := ValidSlotKey(c.key); got != c.valid {
			t.Fatalf("key %q: expected valid=%v, got %v", c.key, c.valid, got)
		}
	}
}

func TestParseSlotKey(t *testing.T) {
	period, hhmm, err := ParseSlotKey("afternoon-15:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if period != Afternoon || hhmm != "15:30" {
		t.Fatalf("expected afternoon/15:30, got %s/%s", period, hhmm)
	}

	if _, _, err := ParseSlotKey("afternoon-12:00"); err == nil {
		t.Fatal("expected error for off-table time")
	}
}

func TestSlotPrice(t *testing.T) {
	cases := []struct {
		key   string
		price int
	}{
		{key: "morning-09:00", price: 500},
		{key: "afternoon-14:00", price: 600},
		{key: "evening-20:30", price: 700},
	}

	for _, c := range cases {
		price, err := SlotPrice(c.key)
		if err != nil {
			t.Fatalf("key %s: unexpected error: %v", c.key, err)
		}
		if price != c.price {
			t.Fatalf("key %s: expected price %d, got %d", c.key, c.price, price)
		}
	}

	if _, err := SlotPrice("bogus-00:00"); err == nil {
		t.Fatal("expected error for invalid key")
	}
}
