package device

import "github.com/gloworm-vision/gloworm-io/gpio"

// LED represents a light emitting diode attached to a GPIO pin.
//
// Wire the cathode (short leg) to ground and the anode to the pin through a
// current-limiting resistor.
type LED struct {
	DigitalOutput
}

// NewLED claims the given pin and wraps it as an LED.
func NewLED(chip gpio.Chip, pin int) (*LED, error) {
	d, err := NewDigitalOutput(chip, pin)
	if err != nil {
		return nil, err
	}

	return &LED{DigitalOutput: *d}, nil
}

// IsLit reports whether the LED is on.
func (l *LED) IsLit() (bool, error) {
	return l.IsActive()
}
