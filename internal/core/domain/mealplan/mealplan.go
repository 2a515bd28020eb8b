package mealplan

import "mealremind/internal/core/domain/reminder"

// Plan is the part of a meal plan the reminders care about: how many items each
// slot holds and when each slot is scheduled.
type Plan struct {
	Meals    map[reminder.MealTime]int
	Schedule map[reminder.MealTime]reminder.Slot
}

func (p Plan) HasItems(m reminder.MealTime) bool {
	return p.Meals[m] > 0
}

// SlotFor returns the plan's schedule for the slot, falling back to the default one.
func (p Plan) SlotFor(m reminder.MealTime) reminder.Slot {
	if slot, ok := p.Schedule[m]; ok {
		defaultSlot, _ := reminder.DefaultSlot(m)
		if slot.Label == "" {
			slot.Label = defaultSlot.Label
		}
		return slot
	}
	slot, _ := reminder.DefaultSlot(m)
	return slot
}
