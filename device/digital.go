package device

import (
	"time"

	"github.com/gloworm-vision/gloworm-io/gpio"
)

// DigitalOutput is a generic output device with on/off behaviour and a
// background blink.
type DigitalOutput struct {
	c *controller
}

var _ Device = &DigitalOutput{}
var _ Switch = &DigitalOutput{}
var _ Blinker = &DigitalOutput{}

// NewDigitalOutput claims the given pin and wraps it as an output device.
func NewDigitalOutput(chip gpio.Chip, pin int) (*DigitalOutput, error) {
	c, err := newController(chip, pin, func(o *Output) error {
		return o.Write(false)
	})
	if err != nil {
		return nil, err
	}

	return &DigitalOutput{c: c}, nil
}

// On cancels any background blink and turns the device on.
func (d *DigitalOutput) On() error {
	if err := d.c.cancel(); err != nil {
		return err
	}

	return d.c.write(true)
}

// Off cancels any background blink and turns the device off.
func (d *DigitalOutput) Off() error {
	return d.c.cancel()
}

// Toggle turns the device off if it's on, and on if it's off.
func (d *DigitalOutput) Toggle() error {
	value, err := d.c.value()
	if err != nil {
		return err
	}

	if value {
		return d.Off()
	}

	return d.On()
}

// Value reports whether the device is currently on, reading the actual pin
// level back through the device's polarity.
func (d *DigitalOutput) Value() (bool, error) {
	return d.c.value()
}

// IsActive reports whether the device is currently on.
func (d *DigitalOutput) IsActive() (bool, error) {
	return d.c.value()
}

// Blink makes the device turn on and off repeatedly in the background. It
// cancels any blink already in progress and returns without waiting for the
// new one.
func (d *DigitalOutput) Blink(onTime, offTime time.Duration, repeat Repeat) error {
	return d.c.blink(onTime, offTime, repeat)
}

// Wait blocks until the background blink finishes and returns the write error
// that ended it, if any. It returns ErrNotBlinking if no blink is in
// progress. A blink that repeats forever has to be stopped with On, Off, or
// Close before Wait can return.
func (d *DigitalOutput) Wait() error {
	return d.c.wait()
}

// ActiveHigh reports whether logical "on" drives the pin high.
func (d *DigitalOutput) ActiveHigh() bool {
	d.c.mu.Lock()
	defer d.c.mu.Unlock()

	return d.c.out.ActiveHigh()
}

// SetActiveHigh sets whether logical "on" drives the pin high (true) or low
// (false). The pin itself is left untouched, so changing polarity inverts
// Value.
func (d *DigitalOutput) SetActiveHigh(active bool) {
	d.c.mu.Lock()
	defer d.c.mu.Unlock()

	d.c.out.SetActiveHigh(active)
}

// Pin returns the GPIO pin number the device is attached to.
func (d *DigitalOutput) Pin() int {
	return d.c.out.Pin()
}

// Close stops any background blink, waits for it to finish, and releases the
// pin.
func (d *DigitalOutput) Close() error {
	return d.c.close()
}
