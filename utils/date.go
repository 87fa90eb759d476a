package utils

import (
	"fmt"
	"time"
)

// DateLocation is the application timezone; all issued timestamps and
// date-bucketed filenames use it.
var DateLocation *time.Location

// InitializeDateLocation loads the configured timezone, falling back to IST
// which is where the field operations run.
func InitializeDateLocation() error {
	name := "Asia/Kolkata"
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("failed to load time location %s: %w", name, err)
	}
	DateLocation = loc
	return nil
}

// Today returns the current time in the application timezone.
func Today() time.Time {
	if DateLocation == nil {
		return time.Now()
	}
	return time.Now().In(DateLocation)
}
