// Package gpio provides access to GPIO lines on the hardware gloworm-io
// supports, either through the pigpio daemon's socket interface or directly
// through memory-mapped registers on a Raspberry Pi.
package gpio

// Level describes the binary state of a GPIO line: either LOW or HIGH.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Chip describes a GPIO controller that can hand out exclusive control of
// individual lines.
type Chip interface {
	// OpenLine claims the given pin for exclusive use and configures it as an
	// output. It fails if the pin doesn't exist or is already claimed.
	OpenLine(pin int) (Line, error)

	// Close releases the chip. Lines opened from the chip are invalid
	// afterwards.
	Close() error
}

// Line is a single claimed GPIO line in output mode.
type Line interface {
	// Read returns the current electrical level of the line.
	Read() (Level, error)

	// Write sets the line to LOW or HIGH.
	Write(level Level) error

	// SetPWM sets the frequency and duty cycle (0 - 1) for the line.
	SetPWM(frequency int, duty float64) error

	// Close drives the line low and releases the claim on it.
	Close() error
}
