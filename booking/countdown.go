package booking

import (
	"fmt"
	"time"
)

// FormatCountdown renders the time left on a hold as zero-padded MM:SS.
// Whole hours are dropped; holds are minutes long.
func FormatCountdown(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", (total%3600)/60, total%60)
}
