package device

import (
	"fmt"

	"github.com/gloworm-vision/gloworm-io/gpio"
)

// Kinds of output device that can be built from a Config.
const (
	KindOutput = "output"
	KindLED    = "led"
	KindBuzzer = "buzzer"
	KindPWM    = "pwm"
)

// Config describes a single output device.
type Config struct {
	Kind string `json:"kind"`
	Pin  int    `json:"pin"`

	// ActiveHigh maps logical "on" to a high pin level. Defaults to true.
	// Ignored for pwm devices, which always drive duty cycles directly.
	ActiveHigh *bool `json:"activeHigh,omitempty"`

	// PWMFrequency is the PWM frequency in Hz for pwm devices. Defaults to
	// DefaultPWMFrequency.
	PWMFrequency int `json:"pwmFrequency,omitempty"`
}

// New builds the device a config describes on the given chip.
func New(chip gpio.Chip, config Config) (Device, error) {
	switch config.Kind {
	case KindOutput:
		d, err := NewDigitalOutput(chip, config.Pin)
		if err != nil {
			return nil, err
		}
		applyPolarity(d, config)

		return d, nil
	case KindLED:
		l, err := NewLED(chip, config.Pin)
		if err != nil {
			return nil, err
		}
		applyPolarity(&l.DigitalOutput, config)

		return l, nil
	case KindBuzzer:
		b, err := NewBuzzer(chip, config.Pin)
		if err != nil {
			return nil, err
		}
		applyPolarity(&b.DigitalOutput, config)

		return b, nil
	case KindPWM:
		return NewPWM(chip, config.Pin, config.PWMFrequency)
	default:
		return nil, fmt.Errorf("unknown device kind %q", config.Kind)
	}
}

func applyPolarity(d *DigitalOutput, config Config) {
	if config.ActiveHigh != nil {
		d.SetActiveHigh(*config.ActiveHigh)
	}
}
