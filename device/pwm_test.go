package device

import (
	"testing"
	"time"

	"github.com/gloworm-vision/gloworm-io/gpio/gpiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPWMSetValue(t *testing.T) {
	chip := gpiotest.NewChip()

	p, err := NewPWM(chip, 18, 0)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, DefaultPWMFrequency, p.Frequency())

	require.NoError(t, p.SetValue(0.25))
	assert.Equal(t, 0.25, p.Value())
	assert.Equal(t, 0.25, chip.Line(18).Duty())
	assert.Equal(t, DefaultPWMFrequency, chip.Line(18).Frequency())

	assert.Error(t, p.SetValue(1.5))
	assert.Error(t, p.SetValue(-0.1))
	assert.Equal(t, 0.25, p.Value())
}

func TestPWMOnOffToggle(t *testing.T) {
	chip := gpiotest.NewChip()

	p, err := NewPWM(chip, 18, 200)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.On())
	assert.Equal(t, 1.0, p.Value())

	active, err := p.IsActive()
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, p.Toggle())
	assert.Equal(t, 0.0, p.Value())

	require.NoError(t, p.Toggle())
	assert.Equal(t, 1.0, p.Value())

	require.NoError(t, p.Off())
	assert.Equal(t, 0.0, chip.Line(18).Duty())
}

func TestPWMBlinkHardSwitch(t *testing.T) {
	chip := gpiotest.NewChip()

	p, err := NewPWM(chip, 18, 0)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Blink(10*time.Millisecond, 10*time.Millisecond, 0, 0, Times(2)))
	require.NoError(t, p.Wait())

	// cancel forces 0, then each cycle is a hard 1 followed by a 0
	assert.Equal(t, []float64{0, 1, 0, 1, 0}, chip.Line(18).Duties())
	assert.Equal(t, 0.0, p.Value())
}

func TestPWMPulseFades(t *testing.T) {
	chip := gpiotest.NewChip()

	p, err := NewPWM(chip, 18, 0)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Pulse(80*time.Millisecond, 80*time.Millisecond, Times(1)))
	require.NoError(t, p.Wait())

	duties := chip.Line(18).Duties()

	// initial cancel, 2 fade-in steps, hold on, 2 fade-out steps, hold off
	require.Len(t, duties, 1+2+1+2+1)
	assert.Equal(t, 0.0, duties[0])
	assert.Equal(t, 1.0, duties[3])
	assert.Equal(t, 0.0, duties[len(duties)-1])

	for i := 1; i < 3; i++ {
		assert.GreaterOrEqual(t, duties[i+1], duties[i])
	}
}

func TestPWMOnCancelsFade(t *testing.T) {
	chip := gpiotest.NewChip()

	p, err := NewPWM(chip, 18, 0)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Blink(50*time.Millisecond, 50*time.Millisecond, 0, 0, Forever))
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, p.On())
	require.NoError(t, p.Wait())

	duties := len(chip.Line(18).Duties())
	time.Sleep(120 * time.Millisecond)

	assert.Equal(t, duties, len(chip.Line(18).Duties()), "no further fading after On")
	assert.Equal(t, 1.0, p.Value())
}

func TestPWMSetValueLeavesFadeRunning(t *testing.T) {
	chip := gpiotest.NewChip()

	p, err := NewPWM(chip, 18, 0)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Blink(20*time.Millisecond, 20*time.Millisecond, 0, 0, Forever))

	require.NoError(t, p.SetValue(0.3))

	// the fade keeps writing over the top of the direct value
	before := len(chip.Line(18).Duties())
	time.Sleep(100 * time.Millisecond)
	assert.Greater(t, len(chip.Line(18).Duties()), before)

	require.NoError(t, p.Off())
	assert.Equal(t, 0.0, p.Value())
}
