package store

import (
	"errors"
	"io"

	"github.com/gloworm-vision/gloworm-io/device"
	"github.com/gloworm-vision/gloworm-io/gpio"
)

// ErrNotExist is returned when a requested config isn't in the store.
var ErrNotExist = errors.New("config does not exist")

// Store describes a persistent storage engine for gloworm-io setup
// information: device definitions and the chip configuration. Live device
// state is never stored, only how to build the devices.
type Store interface {
	DeviceConfig(name string) (device.Config, error)
	ListDeviceConfigs() ([]string, error)
	PutDeviceConfig(name string, c device.Config) error
	DeleteDeviceConfig(name string) error

	ChipConfig() (gpio.Config, error)
	PutChipConfig(c gpio.Config) error

	io.Closer
}
