package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	assert := require.New(t)

	optionalInt := NewOptional(42, true)
	assert.Equal(42, optionalInt.Value)
	assert.True(optionalInt.IsPresent)

	optionalString := NewOptional("foo", false)
	assert.Equal("foo", optionalString.Value)
	assert.False(optionalString.IsPresent)
}

func TestOptionalValueOr(t *testing.T) {
	assert := require.New(t)

	assert.Equal(uint32(5), Some(uint32(5)).ValueOr(30))
	assert.Equal(uint32(30), Optional[uint32]{}.ValueOr(30))
	assert.Equal("default", NewOptional("gentle", false).ValueOr("default"))
}
