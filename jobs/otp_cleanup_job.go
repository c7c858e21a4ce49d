package jobs

import (
	"github.com/mwangi254/medibook/services"
)

// SweepExpiredOTPs drops expired login codes from the OTP store.
func SweepExpiredOTPs() {
	services.OTP.Sweep()
}
