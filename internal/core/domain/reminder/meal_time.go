package reminder

import (
	"errors"
	"fmt"
)

var ErrParseMealTime = errors.New("invalid meal time")

type MealTime struct {
	v string
}

func (m MealTime) String() string {
	return m.v
}

func (m MealTime) IsZero() bool {
	return m == MealTimeUnknown
}

func (m MealTime) MarshalText() ([]byte, error) {
	if m.IsZero() {
		return nil, ErrParseMealTime
	}
	return []byte(m.v), nil
}

func (m *MealTime) UnmarshalText(text []byte) error {
	parsed, err := ParseMealTime(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func ParseMealTime(value string) (MealTime, error) {
	for _, m := range MealTimes {
		if m.v == value {
			return m, nil
		}
	}
	return MealTimeUnknown, fmt.Errorf("%w: %q", ErrParseMealTime, value)
}

var (
	MealTimeUnknown    = MealTime{}
	MealTimeMorning    = MealTime{v: "morning"}
	MealTimeBreakfast  = MealTime{v: "breakfast"}
	MealTimeMidMorning = MealTime{v: "midMorning"}
	MealTimeLunch      = MealTime{v: "lunch"}
	MealTimeEvening    = MealTime{v: "evening"}
	MealTimeDinner     = MealTime{v: "dinner"}
	MealTimeBeforeBed  = MealTime{v: "beforeBed"}
)

// MealTimes lists every meal slot in the order of the day.
var MealTimes = []MealTime{
	MealTimeMorning,
	MealTimeBreakfast,
	MealTimeMidMorning,
	MealTimeLunch,
	MealTimeEvening,
	MealTimeDinner,
	MealTimeBeforeBed,
}

type Slot struct {
	Time  TimeOfDay
	Label string
}

var defaultSlots = map[MealTime]Slot{
	MealTimeMorning:    {Time: MustParseTimeOfDay("07:00"), Label: "Morning"},
	MealTimeBreakfast:  {Time: MustParseTimeOfDay("08:00"), Label: "Breakfast"},
	MealTimeMidMorning: {Time: MustParseTimeOfDay("11:00"), Label: "Mid-Morning Snack"},
	MealTimeLunch:      {Time: MustParseTimeOfDay("13:00"), Label: "Lunch"},
	MealTimeEvening:    {Time: MustParseTimeOfDay("16:00"), Label: "Evening Snack"},
	MealTimeDinner:     {Time: MustParseTimeOfDay("20:00"), Label: "Dinner"},
	MealTimeBeforeBed:  {Time: MustParseTimeOfDay("22:00"), Label: "Before Bed"},
}

// DefaultSlot returns the schedule a meal slot has when the plan does not override it.
func DefaultSlot(m MealTime) (Slot, bool) {
	slot, ok := defaultSlots[m]
	return slot, ok
}
