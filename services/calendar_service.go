package services

import (
	"time"

	"github.com/mwangi254/medibook/models"
)

const dateLayout = "2006-01-02"

// DayCell is one cell of the month grid consumed by the booking and
// availability-editor calendars. It is derived state, never persisted.
type DayCell struct {
	Date           string `json:"date"`
	Day            int    `json:"day"`
	IsCurrentMonth bool   `json:"isCurrentMonth"`
	IsPast         bool   `json:"isPast"`
	IsToday        bool   `json:"isToday"`
	Available      bool   `json:"available"`
	Selected       bool   `json:"selected"`
	TotalSlots     int    `json:"totalSlots"`
}

// ProjectMonth renders a month as complete 7-cell weeks, padded with adjacent-month
// days. A day is available only when it holds a positive slot count and is not
// before today; past dates are never bookable regardless of stored counts.
// Same inputs always produce the same grid.
func ProjectMonth(year int, month time.Month, byDate map[string][]models.AvailabilitySlot, today time.Time, selected string) [][]DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	// Sunday-first grid.
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	daysInMonth := first.AddDate(0, 1, -1).Day()
	cells := int(first.Weekday()) + daysInMonth
	if rem := cells % 7; rem != 0 {
		cells += 7 - rem
	}

	var weeks [][]DayCell
	var week []DayCell
	for i := 0; i < cells; i++ {
		d := gridStart.AddDate(0, 0, i)
		date := d.Format(dateLayout)

		total := 0
		for _, s := range byDate[date] {
			total += s.Count
		}

		cell := DayCell{
			Date:           date,
			Day:            d.Day(),
			IsCurrentMonth: d.Month() == month,
			IsPast:         d.Before(todayDate),
			IsToday:        d.Equal(todayDate),
			Selected:       selected != "" && selected == date,
			TotalSlots:     total,
		}
		cell.Available = total > 0 && !cell.IsPast

		week = append(week, cell)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}
	return weeks
}
