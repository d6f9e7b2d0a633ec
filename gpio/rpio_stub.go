//go:build !linux

package gpio

import "fmt"

// RPIO is only available on linux, where /dev/gpiomem exists.
type RPIO struct{}

func OpenRPIO() (*RPIO, error) {
	return nil, fmt.Errorf("rpio gpio access is only supported on linux")
}

func (r *RPIO) OpenLine(pin int) (Line, error) {
	return nil, fmt.Errorf("rpio gpio access is only supported on linux")
}

func (r *RPIO) Close() error {
	return nil
}
