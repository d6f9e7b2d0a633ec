// Package device implements GPIO output devices such as LEDs, buzzers, and
// PWM-driven actuators, layering a cancellable background blink behaviour on
// top of raw pin writes.
//
// A device belongs to the goroutine that created it; its methods are not
// meant to be called from several goroutines at once. The synchronization a
// device performs internally is between its owner and its own background
// blink task, which share the underlying pin.
package device

import (
	"errors"
	"time"
)

// ErrNotBlinking is returned by Wait when no background blink is in progress.
var ErrNotBlinking = errors.New("no blink in progress")

// Device describes behaviour common to every output device.
type Device interface {
	// Pin returns the GPIO pin number the device is attached to.
	Pin() int

	// Close stops any background blink, waits for it to finish, and releases
	// the underlying GPIO line. No other method may be called afterwards.
	Close() error
}

// Switch describes a device that can be switched on and off.
type Switch interface {
	On() error
	Off() error
	Toggle() error
	IsActive() (bool, error)
}

// Blinker describes a device that can blink on a schedule in the background.
type Blinker interface {
	Blink(onTime, offTime time.Duration, repeat Repeat) error

	// Wait blocks until the background blink has finished.
	Wait() error
}

// Dimmer describes a device whose output level can be varied continuously.
type Dimmer interface {
	SetValue(duty float64) error
	Value() float64
}
