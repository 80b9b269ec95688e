// Package timeutil formats and parses the human-facing clock strings shown
// in the timeline and accepted by seek commands.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// FormatTimeMillis formats seconds as H:MM:SS.mmm for handle positions,
// where a plain clock reading is too coarse.
func FormatTimeMillis(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int(seconds*1000) % 1000
	return fmt.Sprintf("%s.%03d", FormatTime(seconds), millis)
}

// ParseTimeToSeconds parses H:MM:SS, MM:SS, or raw seconds. The seconds
// field may carry a fractional part in any of the forms (1:05.25 is a
// minute and 5.25 seconds).
func ParseTimeToSeconds(timeStr string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(timeStr), ":")

	switch len(parts) {
	case 3:
		hours, err1 := strconv.Atoi(parts[0])
		minutes, err2 := strconv.Atoi(parts[1])
		seconds, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 == nil && err2 == nil && err3 == nil && minutes >= 0 && seconds >= 0 {
			return float64(hours*3600+minutes*60) + seconds, nil
		}
	case 2:
		minutes, err1 := strconv.Atoi(parts[0])
		seconds, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 == nil && err2 == nil && minutes >= 0 && seconds >= 0 {
			return float64(minutes*60) + seconds, nil
		}
	case 1:
		if secs, err := strconv.ParseFloat(parts[0], 64); err == nil {
			return secs, nil
		}
	}

	return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
}
