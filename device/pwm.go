package device

import (
	"fmt"
	"time"

	"github.com/gloworm-vision/gloworm-io/gpio"
)

// DefaultPWMFrequency is the PWM frequency, in Hz, used when a device doesn't
// configure one.
const DefaultPWMFrequency = 100

// PWM is an output device driven by pulse-width modulation, for dimmable LEDs
// and other actuators that understand intermediate levels. Its blink fades
// between off and fully on instead of switching hard.
type PWM struct {
	c         *controller
	frequency int

	duty float64 // last commanded duty cycle, guarded by c.mu
}

var _ Device = &PWM{}
var _ Switch = &PWM{}
var _ Dimmer = &PWM{}

// NewPWM claims the given pin and wraps it as a PWM device running at the
// given frequency in Hz. A frequency of 0 or less selects
// DefaultPWMFrequency.
func NewPWM(chip gpio.Chip, pin int, frequency int) (*PWM, error) {
	if frequency <= 0 {
		frequency = DefaultPWMFrequency
	}

	p := &PWM{frequency: frequency}

	c, err := newController(chip, pin, func(o *Output) error {
		if err := o.SetPWM(p.frequency, 0); err != nil {
			return err
		}
		p.duty = 0

		return nil
	})
	if err != nil {
		return nil, err
	}
	p.c = c

	return p, nil
}

// writeDuty sets the duty cycle under the device lock.
func (p *PWM) writeDuty(duty float64) error {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()

	if err := p.c.out.SetPWM(p.frequency, duty); err != nil {
		return err
	}
	p.duty = duty

	return nil
}

// SetValue sets the duty cycle immediately: 0 is fully off, 1 fully on.
//
// SetValue deliberately leaves any background fade running; the fade will
// overwrite the value on its next step. Cancel it first with On, Off, or a
// new Blink if that isn't what you want.
func (p *PWM) SetValue(duty float64) error {
	if duty < 0 || duty > 1 {
		return fmt.Errorf("duty cycle %v is outside [0, 1]", duty)
	}

	return p.writeDuty(duty)
}

// Value returns the duty cycle the device was last told to drive.
func (p *PWM) Value() float64 {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()

	return p.duty
}

// On cancels any background fade and drives the device fully on.
func (p *PWM) On() error {
	if err := p.c.cancel(); err != nil {
		return err
	}

	return p.writeDuty(1)
}

// Off cancels any background fade and drives the device fully off.
func (p *PWM) Off() error {
	return p.c.cancel()
}

// Toggle switches between fully on and fully off based on the last commanded
// duty cycle.
func (p *PWM) Toggle() error {
	if p.Value() > 0 {
		return p.Off()
	}

	return p.On()
}

// IsActive reports whether the device is being driven at a non-zero duty
// cycle.
func (p *PWM) IsActive() (bool, error) {
	return p.Value() > 0, nil
}

// Blink fades the device in over fadeInTime, holds it on for onTime, fades it
// out over fadeOutTime, and holds it off for offTime, repeatedly, in the
// background. Zero fade times switch hard like a digital blink.
func (p *PWM) Blink(onTime, offTime, fadeInTime, fadeOutTime time.Duration, repeat Repeat) error {
	if onTime < 0 || offTime < 0 || fadeInTime < 0 || fadeOutTime < 0 {
		return fmt.Errorf("blink times must not be negative")
	}

	seq := FadeSequence(onTime, offTime, fadeInTime, fadeOutTime)

	return p.c.fade(seq, p.writeDuty, repeat)
}

// Pulse is a blink with no hold time: the device fades in and straight back
// out again.
func (p *PWM) Pulse(fadeInTime, fadeOutTime time.Duration, repeat Repeat) error {
	return p.Blink(0, 0, fadeInTime, fadeOutTime, repeat)
}

// Wait blocks until the background fade finishes and returns the write error
// that ended it, if any. It returns ErrNotBlinking if no fade is in progress.
func (p *PWM) Wait() error {
	return p.c.wait()
}

// Frequency returns the device's PWM frequency in Hz.
func (p *PWM) Frequency() int {
	return p.frequency
}

// Pin returns the GPIO pin number the device is attached to.
func (p *PWM) Pin() int {
	return p.c.out.Pin()
}

// Close stops any background fade, waits for it to finish, and releases the
// pin.
func (p *PWM) Close() error {
	return p.c.close()
}
