package gpio

import (
	"encoding/binary"
	"fmt"
	"net"
	"sync"
)

// Pigpio controls GPIO over the pigpio socket interface. Commands share a
// single connection, so requests are serialized through a mutex.
type Pigpio struct {
	mu      sync.Mutex
	conn    net.Conn
	claimed map[int]bool
}

// compile-time check for whether Pigpio satisfies the Chip interface
var _ Chip = &Pigpio{}

// DialPigpio dials into the pigpio socket interface (normally running on port 8888)
func DialPigpio(addr string) (*Pigpio, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("couldn't dial into pigpio socket: %w", err)
	}

	return &Pigpio{conn: conn, claimed: make(map[int]bool)}, nil
}

// Close closes the underlying pigpio socket interface connection
func (p *Pigpio) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return fmt.Errorf("connection is already closed")
	}

	err := p.conn.Close()
	p.conn = nil

	return err
}

// OpenLine claims a pin for exclusive use and puts it into output mode.
func (p *Pigpio) OpenLine(pin int) (Line, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil, fmt.Errorf("not connected to pigpio socket interface")
	}

	if p.claimed[pin] {
		return nil, fmt.Errorf("pin %d is already in use", pin)
	}

	if _, err := p.command(cmdModes, uint32(pin), pigpioModeOutput); err != nil {
		return nil, fmt.Errorf("unable to set pin %d to output mode: %w", pin, err)
	}

	p.claimed[pin] = true

	return &pigpioLine{chip: p, pin: pin}, nil
}

// pigpio socket command codes, see http://abyz.me.uk/rpi/pigpio/sif.html
const (
	cmdModes uint32 = 0
	cmdRead  uint32 = 3
	cmdWrite uint32 = 4
	cmdHP    uint32 = 86
)

const pigpioModeOutput uint32 = 1

type cmd struct {
	Cmd uint32
	P1  uint32
	P2  uint32
	P3  uint32
}

// command sends a standard four-word request and returns the result word.
// The caller must hold p.mu.
func (p *Pigpio) command(code, p1, p2 uint32) (uint32, error) {
	request := cmd{
		Cmd: code,
		P1:  p1,
		P2:  p2,
	}

	if err := binary.Write(p.conn, binary.LittleEndian, request); err != nil {
		return 0, fmt.Errorf("unable to write request to socket: %w", err)
	}

	var response cmd
	if err := binary.Read(p.conn, binary.LittleEndian, &response); err != nil {
		return 0, fmt.Errorf("unable to read response from socket: %w", err)
	}

	// pigpio reports failure as a negative result; successful reads return
	// the level, which is never negative
	if int32(response.P3) < 0 {
		return 0, fmt.Errorf("pigpio returned error code %d", int32(response.P3))
	}

	return response.P3, nil
}

// hp sets frequency (1-125,000,000) and duty cycle (0-1,000,000) for hardware
// PWM on the specified pin. The caller must hold p.mu.
func (p *Pigpio) hp(pin, frequency, duty uint32) error {
	request := struct {
		Cmd uint32
		P1  uint32
		P2  uint32
		P3  uint32
		Ext uint32
	}{
		Cmd: cmdHP,
		P1:  pin,
		P2:  frequency,
		P3:  4,
		Ext: duty,
	}

	if err := binary.Write(p.conn, binary.LittleEndian, request); err != nil {
		return fmt.Errorf("unable to write request to socket: %w", err)
	}

	var response cmd
	if err := binary.Read(p.conn, binary.LittleEndian, &response); err != nil {
		return fmt.Errorf("unable to read response from socket: %w", err)
	}

	if int32(response.P3) < 0 {
		return fmt.Errorf("pigpio returned error code %d", int32(response.P3))
	}

	return nil
}

// pigpioLine is a single claimed pin on a Pigpio chip.
type pigpioLine struct {
	chip *Pigpio
	pin  int
}

var _ Line = &pigpioLine{}

func (l *pigpioLine) Read() (Level, error) {
	l.chip.mu.Lock()
	defer l.chip.mu.Unlock()

	if l.chip.conn == nil {
		return Low, fmt.Errorf("not connected to pigpio socket interface")
	}

	level, err := l.chip.command(cmdRead, uint32(l.pin), 0)
	if err != nil {
		return Low, fmt.Errorf("unable to read pin %d: %w", l.pin, err)
	}

	return level != 0, nil
}

func (l *pigpioLine) Write(level Level) error {
	l.chip.mu.Lock()
	defer l.chip.mu.Unlock()

	if l.chip.conn == nil {
		return fmt.Errorf("not connected to pigpio socket interface")
	}

	var rawLevel uint32
	if level {
		rawLevel = 1
	}

	if _, err := l.chip.command(cmdWrite, uint32(l.pin), rawLevel); err != nil {
		return fmt.Errorf("unable to write pin %d: %w", l.pin, err)
	}

	return nil
}

func (l *pigpioLine) SetPWM(frequency int, duty float64) error {
	l.chip.mu.Lock()
	defer l.chip.mu.Unlock()

	if l.chip.conn == nil {
		return fmt.Errorf("not connected to pigpio socket interface")
	}

	if duty < 0 || duty > 1 {
		return fmt.Errorf("duty cycle %v is outside [0, 1]", duty)
	}

	if err := l.chip.hp(uint32(l.pin), uint32(frequency), uint32(float64(1000000)*duty)); err != nil {
		return fmt.Errorf("unable to set pwm on pin %d: %w", l.pin, err)
	}

	return nil
}

// Close drives the line low and releases the claim so the pin can be opened
// again.
func (l *pigpioLine) Close() error {
	l.chip.mu.Lock()
	defer l.chip.mu.Unlock()

	delete(l.chip.claimed, l.pin)

	if l.chip.conn == nil {
		return nil
	}

	if _, err := l.chip.command(cmdWrite, uint32(l.pin), 0); err != nil {
		return fmt.Errorf("unable to drive pin %d low: %w", l.pin, err)
	}

	return nil
}
