package gpio

import "fmt"

// PigpioConfig configures a connection to the pigpio daemon.
type PigpioConfig struct {
	Addr string `json:"addr"`
}

// RPIOConfig configures direct memory-mapped GPIO access.
type RPIOConfig struct{}

// Config selects and configures a GPIO backend. Exactly one member should be
// set.
type Config struct {
	Pigpio *PigpioConfig `json:"pigpio,omitempty"`
	RPIO   *RPIOConfig   `json:"rpio,omitempty"`
}

// New creates the Chip a config describes.
func New(config Config) (Chip, error) {
	if config.Pigpio != nil {
		chip, err := DialPigpio(config.Pigpio.Addr)
		if err != nil {
			return nil, fmt.Errorf("unable to dial pigpio to set up gpio: %w", err)
		}

		return chip, nil
	}

	if config.RPIO != nil {
		chip, err := OpenRPIO()
		if err != nil {
			return nil, fmt.Errorf("unable to open rpio to set up gpio: %w", err)
		}

		return chip, nil
	}

	return nil, fmt.Errorf("no gpio backend configured")
}
