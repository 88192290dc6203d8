package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlatform(t *testing.T) {
	assert.NoError(t, ValidatePlatform("steam"))
	assert.NoError(t, ValidatePlatform("GOG"))
	assert.NoError(t, ValidatePlatform("playstation"))
	assert.Error(t, ValidatePlatform("amiga"))
	assert.Error(t, ValidatePlatform(""))
}

func TestValidateStructGameStatus(t *testing.T) {
	v := GetValidator()

	type payload struct {
		Status string `validate:"required,gamestatus"`
	}

	assert.NoError(t, v.ValidateStruct(payload{Status: "backlog"}))
	assert.NoError(t, v.ValidateStruct(payload{Status: "completed"}))
	assert.Error(t, v.ValidateStruct(payload{Status: "paused"}))
	assert.Error(t, v.ValidateStruct(payload{}))
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	type payload struct {
		PlatformID string `validate:"required,platform"`
		Percentage int    `validate:"gte=0,lte=100"`
	}

	err := v.ValidateStruct(payload{PlatformID: "amiga", Percentage: 150})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "Invalid platform", fields["platformid"])
	assert.Equal(t, "Must be at most 100", fields["percentage"])
}

func TestDisplayPlatform(t *testing.T) {
	assert.Equal(t, "Steam", DisplayPlatform("steam"))
	assert.Equal(t, "Xbox", DisplayPlatform("xbox"))
}
