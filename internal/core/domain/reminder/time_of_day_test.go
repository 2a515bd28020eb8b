package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	validCases := []struct {
		value  string
		hour   int
		minute int
	}{
		{"00:00", 0, 0},
		{"07:05", 7, 5},
		{"13:00", 13, 0},
		{"23:59", 23, 59},
	}
	for _, testcase := range validCases {
		t.Run(testcase.value, func(t *testing.T) {
			parsed, err := ParseTimeOfDay(testcase.value)
			assert.Nil(t, err)
			assert.Equal(t, testcase.hour, parsed.Hour())
			assert.Equal(t, testcase.minute, parsed.Minute())
			assert.Equal(t, testcase.value, parsed.String())
		})
	}

	invalidCases := []string{"", "7:00", "24:00", "12:60", "12-00", " 12:00", "12:00:00", "ab:cd"}
	for _, value := range invalidCases {
		t.Run("invalid "+value, func(t *testing.T) {
			_, err := ParseTimeOfDay(value)
			assert.ErrorIs(t, err, ErrParseTimeOfDay)
		})
	}
}

func TestAdjustReminderTime(t *testing.T) {
	cases := []struct {
		value    string
		minutes  int
		expected string
	}{
		{"23:50", 15, "00:05"},
		{"08:00", -30, "07:30"},
		{"00:10", -15, "23:55"},
		{"12:00", 0, "12:00"},
		{"12:00", 5, "12:05"},
		{"06:00", 24 * 60, "06:00"},
		{"06:00", -3 * 24 * 60, "06:00"},
	}
	for _, testcase := range cases {
		t.Run(testcase.value, func(t *testing.T) {
			adjusted, err := AdjustReminderTime(testcase.value, testcase.minutes)
			assert.Nil(t, err)
			assert.Equal(t, testcase.expected, adjusted)
		})
	}

	_, err := AdjustReminderTime("25:00", 5)
	assert.ErrorIs(t, err, ErrParseTimeOfDay)
}

func TestTimeOfDayOn(t *testing.T) {
	location := time.FixedZone("test", 3*60*60)
	day := time.Date(2024, 3, 10, 22, 17, 45, 12, location)

	at := MustParseTimeOfDay("08:30").On(day)

	assert.Equal(t, time.Date(2024, 3, 10, 8, 30, 0, 0, location), at)
}

func TestTimeOfDayText(t *testing.T) {
	assert := require.New(t)

	var parsed TimeOfDay
	assert.Nil(parsed.UnmarshalText([]byte("21:45")))
	text, err := parsed.MarshalText()
	assert.Nil(err)
	assert.Equal("21:45", string(text))
	assert.Error(parsed.UnmarshalText([]byte("9:45")))
}

func TestParseMealTime(t *testing.T) {
	for _, mealTime := range MealTimes {
		t.Run(mealTime.String(), func(t *testing.T) {
			parsed, err := ParseMealTime(mealTime.String())
			assert.Nil(t, err)
			assert.Equal(t, mealTime, parsed)
			_, ok := DefaultSlot(mealTime)
			assert.True(t, ok)
		})
	}

	for _, value := range []string{"", "Lunch", "supper", "mid_morning"} {
		t.Run("invalid "+value, func(t *testing.T) {
			parsed, err := ParseMealTime(value)
			assert.ErrorIs(t, err, ErrParseMealTime)
			assert.Equal(t, MealTimeUnknown, parsed)
		})
	}
}

func TestReminderValidateRepeat(t *testing.T) {
	base := Reminder{ID: "r", MealTime: MealTimeLunch, Version: 1}

	cases := []struct {
		id       string
		interval uint32
		count    uint32
		repeat   bool
		valid    bool
	}{
		{id: "repeat off", repeat: false, valid: true},
		{id: "five times ten minutes", repeat: true, interval: 10, count: 5, valid: true},
		{id: "no interval", repeat: true, interval: 0, count: 5, valid: false},
		{id: "no count", repeat: true, interval: 10, count: 0, valid: false},
		{id: "a whole day", repeat: true, interval: 60, count: 24, valid: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			r := base
			r.Repeat = testcase.repeat
			r.RepeatInterval.Value, r.RepeatInterval.IsPresent = testcase.interval, true
			r.MaxRepeats.Value, r.MaxRepeats.IsPresent = testcase.count, true
			err := r.Validate()
			if testcase.valid {
				assert.Nil(t, err)
			} else {
				assert.ErrorIs(t, err, ErrReminderInvalidRepeat)
			}
		})
	}
}
