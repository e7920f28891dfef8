// Package clocktime converts human clock times such as "8:00 PM" into daily
// cron expressions with a seconds field.
package clocktime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTime is returned for malformed or out-of-range clock input.
var ErrInvalidTime = errors.New("invalid time")

// Clock is a time of day in 24-hour form.
type Clock struct {
	Hour   int
	Minute int
}

// String renders the clock in 12-hour form, e.g. "6:30 PM".
func (c Clock) String() string {
	meridian := "AM"
	hour := c.Hour
	if hour >= 12 {
		meridian = "PM"
	}
	switch {
	case hour == 0:
		hour = 12
	case hour > 12:
		hour -= 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, meridian)
}

// Cron returns the daily six-field expression for the clock:
// second, minute, hour, day-of-month, month, day-of-week.
func (c Clock) Cron() string {
	return fmt.Sprintf("0 %d %d * * *", c.Minute, c.Hour)
}

// ParseClock reads "HH[:MM] [AM|PM]". Without a marker the hour is taken as
// 24-hour time.
func ParseClock(input string) (Clock, error) {
	fields := strings.Fields(input)
	if len(fields) == 1 {
		fields = splitGluedMeridian(fields[0])
	}
	if len(fields) == 0 || len(fields) > 2 {
		return Clock{}, invalid(input, "expected HH[:MM] [AM|PM]")
	}

	hourText, minuteText, hasMinute := strings.Cut(fields[0], ":")
	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return Clock{}, invalid(input, "hour is not a number")
	}
	minute := 0
	if hasMinute {
		if minute, err = strconv.Atoi(minuteText); err != nil {
			return Clock{}, invalid(input, "minute is not a number")
		}
	}

	if len(fields) == 2 {
		switch strings.ToUpper(fields[1]) {
		case "AM":
			if hour < 1 || hour > 12 {
				return Clock{}, invalid(input, "hour must be 1-12 with AM/PM")
			}
			if hour == 12 {
				hour = 0
			}
		case "PM":
			if hour < 1 || hour > 12 {
				return Clock{}, invalid(input, "hour must be 1-12 with AM/PM")
			}
			if hour != 12 {
				hour += 12
			}
		default:
			return Clock{}, invalid(input, "expected AM or PM")
		}
	}

	if hour < 0 || hour > 23 {
		return Clock{}, invalid(input, "hour out of range")
	}
	if minute < 0 || minute > 59 {
		return Clock{}, invalid(input, "minute out of range")
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// ToCron translates a human clock time into a daily cron expression.
func ToCron(input string) (string, error) {
	clock, err := ParseClock(input)
	if err != nil {
		return "", err
	}
	return clock.Cron(), nil
}

// FromCron reverses Cron for expressions of the form "0 M H * * *".
func FromCron(expr string) (Clock, error) {
	fields := strings.Fields(expr)
	if len(fields) != 6 || fields[0] != "0" || fields[3] != "*" || fields[4] != "*" || fields[5] != "*" {
		return Clock{}, invalid(expr, "not a daily expression")
	}
	minute, err := strconv.Atoi(fields[1])
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, invalid(expr, "bad minute field")
	}
	hour, err := strconv.Atoi(fields[2])
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, invalid(expr, "bad hour field")
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// splitGluedMeridian turns "6:30pm" into ["6:30", "pm"].
func splitGluedMeridian(token string) []string {
	if len(token) < 3 {
		return []string{token}
	}
	suffix := strings.ToUpper(token[len(token)-2:])
	if suffix != "AM" && suffix != "PM" {
		return []string{token}
	}
	return []string{token[:len(token)-2], token[len(token)-2:]}
}

func invalid(input, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidTime, input, reason)
}
