package device

import (
	"time"

	"github.com/gloworm-vision/gloworm-io/gpio"
)

// Buzzer represents a digital (active) buzzer attached to a GPIO pin.
type Buzzer struct {
	DigitalOutput
}

// NewBuzzer claims the given pin and wraps it as a buzzer.
func NewBuzzer(chip gpio.Chip, pin int) (*Buzzer, error) {
	d, err := NewDigitalOutput(chip, pin)
	if err != nil {
		return nil, err
	}

	return &Buzzer{DigitalOutput: *d}, nil
}

// Beep makes the buzzer sound on and off repeatedly in the background.
func (b *Buzzer) Beep(onTime, offTime time.Duration, repeat Repeat) error {
	return b.Blink(onTime, offTime, repeat)
}
