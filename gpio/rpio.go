//go:build linux

package gpio

import (
	"fmt"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"
)

// RPIO controls GPIO through memory-mapped BCM2835 registers on a Raspberry
// Pi, without a daemon in between. Requires access to /dev/gpiomem (or root
// for /dev/mem).
type RPIO struct {
	mu      sync.Mutex
	claimed map[int]bool
}

// compile-time check for whether RPIO satisfies the Chip interface
var _ Chip = &RPIO{}

// OpenRPIO maps the GPIO memory range.
func OpenRPIO() (*RPIO, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("unable to map gpio memory: %w", err)
	}

	return &RPIO{claimed: make(map[int]bool)}, nil
}

// OpenLine claims a BCM pin for exclusive use and puts it into output mode.
func (r *RPIO) OpenLine(pin int) (Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// BCM2835 exposes GPIO 0-53, but only the first bank is usable on the
	// Raspberry Pi headers
	if pin < 0 || pin > 31 {
		return nil, fmt.Errorf("unknown pin %d", pin)
	}

	if r.claimed[pin] {
		return nil, fmt.Errorf("pin %d is already in use", pin)
	}

	p := rpio.Pin(pin)
	p.Output()

	r.claimed[pin] = true

	return &rpioLine{chip: r, pin: p}, nil
}

// Close unmaps the GPIO memory range.
func (r *RPIO) Close() error {
	if err := rpio.Close(); err != nil {
		return fmt.Errorf("unable to unmap gpio memory: %w", err)
	}

	return nil
}

// rpioLine is a single claimed pin on an RPIO chip.
type rpioLine struct {
	chip *RPIO
	pin  rpio.Pin
}

var _ Line = &rpioLine{}

func (l *rpioLine) Read() (Level, error) {
	return l.pin.Read() == rpio.High, nil
}

func (l *rpioLine) Write(level Level) error {
	if level {
		l.pin.High()
	} else {
		l.pin.Low()
	}

	return nil
}

// rpio expresses duty as a slot count out of a fixed cycle length; 100 slots
// gives 1% resolution.
const rpioPWMCycle = 100

func (l *rpioLine) SetPWM(frequency int, duty float64) error {
	if duty < 0 || duty > 1 {
		return fmt.Errorf("duty cycle %v is outside [0, 1]", duty)
	}

	l.pin.Mode(rpio.Pwm)

	// the source frequency is divided by the cycle length, so multiply it
	// back up to get the requested PWM frequency
	l.pin.Freq(frequency * rpioPWMCycle)
	l.pin.DutyCycle(uint32(duty*rpioPWMCycle+0.5), rpioPWMCycle)

	return nil
}

func (l *rpioLine) Close() error {
	l.pin.Output()
	l.pin.Low()

	l.chip.mu.Lock()
	defer l.chip.mu.Unlock()

	delete(l.chip.claimed, int(l.pin))

	return nil
}
