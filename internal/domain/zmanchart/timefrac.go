package zmanchart

import (
	"fmt"
	"time"
)

// HoursFraction collapses a timestamp's wall-clock fields into a single
// float on the shared 0-24 axis. The localized clock time is used, never
// UTC: the chart shows what a clock on the wall at the location reads.
func HoursFraction(t time.Time) float64 {
	hour, minute, second := t.Clock()
	return float64(hour) + float64(minute)/60 + float64(second)/3600
}

// ClockString renders a fractional hour as zero-padded "HH:MM:SS",
// truncating sub-second remainders. The hour field wraps at 24, so a value
// of exactly 24 reads "00:00:00".
func ClockString(x float64) string {
	hours := int(x) % 24
	minutes := int(x*60) % 60
	seconds := int(x*3600) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
