package reminder

import c "mealremind/internal/core/domain/common"

// DefaultReminders are seeded into an empty store on first start.
func DefaultReminders() []CreateInput {
	return []CreateInput{
		{
			MealTime:     MealTimeBreakfast,
			ReminderTime: MustParseTimeOfDay("08:00"),
			Enabled:      true,
			Label:        "Breakfast Time",
			SoundID:      c.Some("default"),
		},
		{
			MealTime:     MealTimeLunch,
			ReminderTime: MustParseTimeOfDay("13:00"),
			Enabled:      true,
			Label:        "Lunch Time",
			SoundID:      c.Some("gentle"),
		},
		{
			MealTime:     MealTimeDinner,
			ReminderTime: MustParseTimeOfDay("20:00"),
			Enabled:      true,
			Label:        "Dinner Time",
			SoundID:      c.Some("kitchen"),
		},
	}
}
