// Package timeofday converts naive local "HH:MM" times and "YYYY-MM-DD"
// dates used by availability rules and bookings.
package timeofday

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	DateLayout = "2006-01-02"

	MinutesPerDay = 24 * 60
)

var (
	ErrInvalidTime    = errors.New("неверный формат времени, ожидается HH:MM")
	ErrInvalidDate    = errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	ErrInvalidWeekday = errors.New("неверный день недели")
)

var timeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

var weekdays = [...]string{
	time.Sunday:    "Sunday",
	time.Monday:    "Monday",
	time.Tuesday:   "Tuesday",
	time.Wednesday: "Wednesday",
	time.Thursday:  "Thursday",
	time.Friday:    "Friday",
	time.Saturday:  "Saturday",
}

// ToMinutes returns the minute offset from midnight (0..1439) of an "HH:MM" string.
func ToMinutes(value string) (int, error) {
	parts := timeRegex.FindStringSubmatch(value)
	if parts == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}

	hours, _ := strconv.Atoi(parts[1])
	minutes, _ := strconv.Atoi(parts[2])

	return hours*60 + minutes, nil
}

// ToTimeString is the inverse of ToMinutes. Offsets of a full day or more
// are rendered as-is ("24:00"), which only happens for interval ends.
func ToTimeString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func ValidTime(value string) bool {
	return timeRegex.MatchString(value)
}

func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return date, nil
}

// WeekdayOf returns the English weekday name ("Monday") of a calendar date.
func WeekdayOf(date string) (string, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return weekdays[parsed.Weekday()], nil
}

func ParseWeekday(value string) (time.Weekday, error) {
	for i, name := range weekdays {
		if name == value {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, value)
}

func WeekdayName(day time.Weekday) string {
	return weekdays[day]
}
