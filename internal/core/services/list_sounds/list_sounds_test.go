package listsounds

import (
	"context"
	"mealremind/internal/core/domain/sound"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIncludesCustomSounds(t *testing.T) {
	// Setup ---
	catalog := sound.NewCatalog(2, sound.NewFakeIDGenerator())
	builtIn := len(catalog.List())
	custom, err := catalog.AddCustom("Gong", "https://example.com/gong.mp3")
	require.Nil(t, err)
	service := New(catalog)

	// Exercise ---
	result, err := service.Run(context.Background(), Input{})

	// Verify ---
	assert.Nil(t, err)
	assert.Equal(t, builtIn+1, len(result.Sounds))
	assert.Equal(t, custom, result.Sounds[len(result.Sounds)-1])
}
