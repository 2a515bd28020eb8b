package identity

import (
	"mealremind/internal/core/domain/reminder"
	"testing"

	"github.com/google/uuid"
)

func TestReminderIDGenerator(t *testing.T) {
	generator := NewUUID()
	ids := make(map[reminder.ID]struct{})
	for i := 0; i < 100; i++ {
		id := generator.GenerateReminderID()
		if _, err := uuid.Parse(string(id)); err != nil {
			t.Fatalf("id %q is not a UUID: %v", id, err)
		}
		if _, ok := ids[id]; ok {
			t.Fatalf("id %v already exists (%v)", id, ids)
		}
		ids[id] = struct{}{}
	}
}

func TestCustomSoundIDGenerator(t *testing.T) {
	generator := NewUUID()
	first := generator.GenerateCustomSoundID()
	second := generator.GenerateCustomSoundID()
	if first == "" || first == second {
		t.Fatalf("custom sound ids must be unique and non-empty, got %q and %q", first, second)
	}
}
