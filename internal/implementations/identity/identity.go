package identity

import (
	"mealremind/internal/core/domain/reminder"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateReminderID() reminder.ID {
	return reminder.ID(uuid.New().String())
}

func (g *UUID) GenerateCustomSoundID() string {
	return uuid.New().String()
}
