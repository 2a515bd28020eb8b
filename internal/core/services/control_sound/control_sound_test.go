package controlsound

import (
	"context"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/sound"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusDoesNotStop(t *testing.T) {
	// Setup ---
	player := sound.NewFakePlayer()
	player.CurrentStatus = sound.Status{IsPlaying: true, RemainingSeconds: 12}
	service := New(logging.NewFakeLogger(), player)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Action: ActionStatus})

	// Verify ---
	assert.Nil(t, err)
	assert.Equal(t, sound.Status{IsPlaying: true, RemainingSeconds: 12}, result.Status)
	assert.Equal(t, 0, player.Stopped)
}

func TestStop(t *testing.T) {
	player := sound.NewFakePlayer()
	service := New(logging.NewFakeLogger(), player)

	_, err := service.Run(context.Background(), Input{Action: ActionStop})

	assert.Nil(t, err)
	assert.Equal(t, []string{"stop"}, player.Calls())
}

func TestUnknownAction(t *testing.T) {
	service := New(logging.NewFakeLogger(), sound.NewFakePlayer())

	_, err := service.Run(context.Background(), Input{})

	assert.ErrorIs(t, err, ErrUnknownAction)
}
