package services

import (
	"fmt"
	"strings"
)

// Period is the closed set of bookable day segments.
type Period string

const (
	Morning   Period = "morning"
	Afternoon Period = "afternoon"
	Evening   Period = "evening"
)

var Periods = []Period{Morning, Afternoon, Evening}

func (p Period) Valid() bool {
	switch p {
	case Morning, Afternoon, Evening:
		return true
	}
	return false
}

// Price bands are display-only and depend on the period alone.
var periodPrices = map[Period]int{
	Morning:   500,
	Afternoon: 600,
	Evening:   700,
}

func (p Period) Price() int {
	return periodPrices[p]
}

var periodStarts = map[Period]struct {
	hour   int
	minute int
}{
	Morning:   {9, 0},
	Afternoon: {14, 0},
	Evening:   {18, 0},
}

const slotsPerPeriod = 6

// PeriodTimes returns the six half-hour start times of a period, zero-padded 24h.
func PeriodTimes(p Period) []string {
	start, ok := periodStarts[p]
	if !ok {
		return nil
	}
	times := make([]string, 0, slotsPerPeriod)
	h, m := start.hour, start.minute
	for i := 0; i < slotsPerPeriod; i++ {
		times = append(times, fmt.Sprintf("%02d:%02d", h, m))
		m += 30
		if m >= 60 {
			m -= 60
			h++
		}
	}
	return times
}

// SlotKey builds the canonical "{period}-{HH:MM}" key.
func SlotKey(p Period, hhmm string) string {
	return string(p) + "-" + hhmm
}

// AllSlotKeys lists the full static slot table, period by period.
func AllSlotKeys() []string {
	keys := make([]string, 0, len(Periods)*slotsPerPeriod)
	for _, p := range Periods {
		for _, t := range PeriodTimes(p) {
			keys = append(keys, SlotKey(p, t))
		}
	}
	return keys
}

var validSlotKeys = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, k := range AllSlotKeys() {
		m[k] = struct{}{}
	}
	return m
}()

// ValidSlotKey reports whether key belongs to the static slot table.
func ValidSlotKey(key string) bool {
	_, ok := validSlotKeys[key]
	return ok
}

// ParseSlotKey splits a canonical key into its period and start time.
func ParseSlotKey(key string) (Period, string, error) {
	if !ValidSlotKey(key) {
		return "", "", fmt.Errorf("invalid slot key: %s", key)
	}
	idx := strings.Index(key, "-")
	return Period(key[:idx]), key[idx+1:], nil
}

// SlotPrice returns the display price for a canonical slot key.
func SlotPrice(key string) (int, error) {
	period, _, err := ParseSlotKey(key)
	if err != nil {
		return 0, err
	}
	return period.Price(), nil
}
