package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateBookingID returns the human-facing booking reference: "BK" plus the
// trailing six digits of a millisecond timestamp. Display identifier only, the
// store-assigned uuid stays primary.
func GenerateBookingID() string {
	return fmt.Sprintf("BK%06d", time.Now().UnixMilli()%1000000)
}

func GenerateOTPCode() string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	return fmt.Sprintf("%06d", seededRand.Intn(1000000))
}
