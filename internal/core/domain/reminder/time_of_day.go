package reminder

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const minutesPerDay = 24 * 60

var ErrParseTimeOfDay = errors.New("invalid time of day, expected HH:MM")

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// TimeOfDay is a device-local wall clock time with minute precision.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour int, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d", ErrParseTimeOfDay, hour, minute)
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

func ParseTimeOfDay(value string) (TimeOfDay, error) {
	match := timeOfDayPattern.FindStringSubmatch(value)
	if match == nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrParseTimeOfDay, value)
	}
	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

func MustParseTimeOfDay(value string) TimeOfDay {
	t, err := ParseTimeOfDay(value)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int {
	return t.minutes / 60
}

func (t TimeOfDay) Minute() int {
	return t.minutes % 60
}

// MinutesOfDay returns the number of minutes since midnight.
func (t TimeOfDay) MinutesOfDay() int {
	return t.minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Add shifts the time by the given number of minutes, wrapping around midnight.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	shifted := (t.minutes + minutes) % minutesPerDay
	if shifted < 0 {
		shifted += minutesPerDay
	}
	return TimeOfDay{minutes: shifted}
}

// On returns the instant of this time of day on the calendar date of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	year, month, date := day.Date()
	return time.Date(year, month, date, t.Hour(), t.Minute(), 0, 0, day.Location())
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AdjustReminderTime shifts an HH:MM string by minutes, wrapping across midnight.
func AdjustReminderTime(value string, minutes int) (string, error) {
	t, err := ParseTimeOfDay(value)
	if err != nil {
		return "", err
	}
	return t.Add(minutes).String(), nil
}
