package logger

import "time"

// RoundMS rounds a duration to the nearest millisecond for consistent
// logging.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}
