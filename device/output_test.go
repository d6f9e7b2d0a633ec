package device

import (
	"testing"

	"github.com/gloworm-vision/gloworm-io/gpio"
	"github.com/gloworm-vision/gloworm-io/gpio/gpiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputRoundTrip(t *testing.T) {
	for _, activeHigh := range []bool{true, false} {
		chip := gpiotest.NewChip()

		out, err := NewOutput(chip, 17)
		require.NoError(t, err)
		out.SetActiveHigh(activeHigh)

		for _, logical := range []bool{true, false, true} {
			require.NoError(t, out.Write(logical))

			value, err := out.Value()
			require.NoError(t, err)
			assert.Equal(t, logical, value, "activeHigh=%v", activeHigh)
		}
	}
}

func TestOutputPolarityMapsLevels(t *testing.T) {
	chip := gpiotest.NewChip()

	out, err := NewOutput(chip, 4)
	require.NoError(t, err)

	require.NoError(t, out.Write(true))
	assert.Equal(t, gpio.High, chip.Line(4).Level())

	out.SetActiveHigh(false)

	require.NoError(t, out.Write(true))
	assert.Equal(t, gpio.Low, chip.Line(4).Level())
}

func TestSetActiveHighLeavesPinAlone(t *testing.T) {
	chip := gpiotest.NewChip()

	out, err := NewOutput(chip, 4)
	require.NoError(t, err)

	require.NoError(t, out.Write(true))
	writes := len(chip.Line(4).Writes())

	// flipping polarity reinterprets the level without touching it
	out.SetActiveHigh(false)
	assert.Len(t, chip.Line(4).Writes(), writes)

	value, err := out.Value()
	require.NoError(t, err)
	assert.False(t, value)
}

func TestNewOutputClaimsPin(t *testing.T) {
	chip := gpiotest.NewChip()

	out, err := NewOutput(chip, 21)
	require.NoError(t, err)

	_, err = NewOutput(chip, 21)
	assert.Error(t, err)

	require.NoError(t, out.Close())

	_, err = NewOutput(chip, 21)
	assert.NoError(t, err)
}
