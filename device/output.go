package device

import (
	"fmt"

	"github.com/gloworm-vision/gloworm-io/gpio"
)

// Output is a raw GPIO output with a configurable polarity. It maps logical
// on/off values to electrical levels and back, and performs no locking of its
// own; concurrent access is the wrapping device's problem.
type Output struct {
	line        gpio.Line
	pin         int
	activeState bool
}

// NewOutput claims the given pin as an output. It fails if the pin doesn't
// exist or is already claimed. The output starts out active-high.
func NewOutput(chip gpio.Chip, pin int) (*Output, error) {
	line, err := chip.OpenLine(pin)
	if err != nil {
		return nil, fmt.Errorf("unable to open line for pin %d: %w", pin, err)
	}

	return &Output{line: line, pin: pin, activeState: true}, nil
}

// SetActiveHigh sets whether logical "on" drives the pin high (true) or low
// (false). It only changes how levels are interpreted, not the pin itself, so
// changing polarity inverts Value.
func (o *Output) SetActiveHigh(active bool) {
	o.activeState = active
}

// ActiveHigh reports whether logical "on" drives the pin high.
func (o *Output) ActiveHigh() bool {
	return o.activeState
}

// Pin returns the pin number the output is attached to.
func (o *Output) Pin() int {
	return o.pin
}

func (o *Output) valueToLevel(value bool) gpio.Level {
	return gpio.Level(value == o.activeState)
}

func (o *Output) levelToValue(level gpio.Level) bool {
	return bool(level) == o.activeState
}

// Write drives the pin to the level representing the given logical value.
func (o *Output) Write(value bool) error {
	if err := o.line.Write(o.valueToLevel(value)); err != nil {
		return fmt.Errorf("unable to write pin %d: %w", o.pin, err)
	}

	return nil
}

// Value reads the pin and reports the logical value its level represents.
func (o *Output) Value() (bool, error) {
	level, err := o.line.Read()
	if err != nil {
		return false, fmt.Errorf("unable to read pin %d: %w", o.pin, err)
	}

	return o.levelToValue(level), nil
}

// SetPWM sets the pin's PWM frequency and duty cycle.
func (o *Output) SetPWM(frequency int, duty float64) error {
	if err := o.line.SetPWM(frequency, duty); err != nil {
		return fmt.Errorf("unable to set pwm on pin %d: %w", o.pin, err)
	}

	return nil
}

// Close releases the pin, driving it low.
func (o *Output) Close() error {
	return o.line.Close()
}
