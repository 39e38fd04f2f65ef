package scheduling

import (
	"fmt"
	"strconv"
	"strings"
)

// ConvertTo24Hour converts a 12-hour clock string like "05:10 PM" into the
// wire format "17:10:00". Noon and midnight need care: "12:xx AM" maps to
// "00:xx" and "12:xx PM" stays "12:xx".
func ConvertTo24Hour(t string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(t))
	if len(fields) != 2 {
		return "", fmt.Errorf("invalid 12-hour time %q", t)
	}

	meridiem := strings.ToUpper(fields[1])
	if meridiem != "AM" && meridiem != "PM" {
		return "", fmt.Errorf("invalid meridiem in %q", t)
	}

	parts := strings.Split(fields[0], ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid clock value in %q", t)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 1 || hour > 12 {
		return "", fmt.Errorf("invalid hour in %q", t)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", t)
	}

	if meridiem == "AM" {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}

	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}

// ConvertTo12Hour renders a "15:04" or "15:04:05" wire time for display,
// e.g. "17:10:00" becomes "05:10 PM".
func ConvertTo12Hour(t string) (string, error) {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", fmt.Errorf("invalid 24-hour time %q", t)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", t)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", t)
	}

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%02d:%02d %s", display, minute, meridiem), nil
}
