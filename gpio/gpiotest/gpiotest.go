// Package gpiotest provides an in-memory gpio.Chip implementation for tests.
package gpiotest

import (
	"fmt"
	"sync"

	"github.com/gloworm-vision/gloworm-io/gpio"
)

// Chip is a fake gpio.Chip. Lines spring into existence when first referenced
// and record every write made to them.
type Chip struct {
	mu    sync.Mutex
	lines map[int]*Line
}

var _ gpio.Chip = &Chip{}

func NewChip() *Chip {
	return &Chip{lines: make(map[int]*Line)}
}

// Line returns the fake line for a pin, creating it if needed, so tests can
// inspect a line whether or not it has been opened yet.
func (c *Chip) Line(pin int) *Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.lines[pin]
	if !ok {
		l = &Line{pin: pin}
		c.lines[pin] = l
	}

	return l
}

func (c *Chip) OpenLine(pin int) (gpio.Line, error) {
	l := c.Line(pin)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.open {
		return nil, fmt.Errorf("pin %d is already in use", pin)
	}

	l.open = true

	return l, nil
}

func (c *Chip) Close() error {
	return nil
}

// Line is a fake gpio.Line that remembers its state and the history of writes
// made to it.
type Line struct {
	mu        sync.Mutex
	pin       int
	open      bool
	level     gpio.Level
	duty      float64
	frequency int
	writes    []gpio.Level
	duties    []float64

	// WriteErr, ReadErr, and PWMErr, when set, are returned by the
	// corresponding methods. Set them before driving the line.
	WriteErr error
	ReadErr  error
	PWMErr   error
}

var _ gpio.Line = &Line{}

func (l *Line) Read() (gpio.Level, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ReadErr != nil {
		return gpio.Low, l.ReadErr
	}

	return l.level, nil
}

func (l *Line) Write(level gpio.Level) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.WriteErr != nil {
		return l.WriteErr
	}

	l.level = level
	l.writes = append(l.writes, level)

	return nil
}

func (l *Line) SetPWM(frequency int, duty float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.PWMErr != nil {
		return l.PWMErr
	}

	if duty < 0 || duty > 1 {
		return fmt.Errorf("duty cycle %v is outside [0, 1]", duty)
	}

	l.frequency = frequency
	l.duty = duty
	l.duties = append(l.duties, duty)

	return nil
}

func (l *Line) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.open = false
	l.level = gpio.Low

	return nil
}

// Level returns the line's current electrical level.
func (l *Line) Level() gpio.Level {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.level
}

// Duty returns the last duty cycle set on the line.
func (l *Line) Duty() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.duty
}

// Frequency returns the last PWM frequency set on the line.
func (l *Line) Frequency() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.frequency
}

// Writes returns every level written to the line, in order.
func (l *Line) Writes() []gpio.Level {
	l.mu.Lock()
	defer l.mu.Unlock()

	writes := make([]gpio.Level, len(l.writes))
	copy(writes, l.writes)

	return writes
}

// Duties returns every duty cycle set on the line, in order.
func (l *Line) Duties() []float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	duties := make([]float64, len(l.duties))
	copy(duties, l.duties)

	return duties
}
