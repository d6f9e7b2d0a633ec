package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gloworm-vision/gloworm-io/device"
	"github.com/gloworm-vision/gloworm-io/gpio"
)

var errDeviceNotFound = errors.New("device not found")

// deviceManager synchronizes access to the live devices. This is a little
// more complicated than a plain map since devices aren't safe for concurrent
// use and rebuilding one closes the old device (that is, we can't be passing
// out devices and then close or drive one while a caller might be using it),
// so every caller holds the lock for the whole call.
type deviceManager struct {
	chip    gpio.Chip
	devices map[string]device.Device
	mu      *sync.Mutex
}

// Update replaces the named device with one built from config, closing the
// old device first so its pin is free to claim again.
func (m *deviceManager) Update(name string, config device.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.devices[name]; ok {
		if err := old.Close(); err != nil {
			return fmt.Errorf("unable to close old device: %w", err)
		}
		delete(m.devices, name)
	}

	d, err := device.New(m.chip, config)
	if err != nil {
		return fmt.Errorf("unable to create device from config: %w", err)
	}

	m.devices[name] = d

	return nil
}

// Remove closes the named device and drops it from the registry.
func (m *deviceManager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.devices[name]
	if !ok {
		return errDeviceNotFound
	}

	delete(m.devices, name)

	if err := d.Close(); err != nil {
		return fmt.Errorf("unable to close device: %w", err)
	}

	return nil
}

// Do runs fn with exclusive access to the named device. Even read-only calls
// take the write lock; a concurrent RPC could be mutating the device's blink
// state.
func (m *deviceManager) Do(name string, fn func(d device.Device) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.devices[name]
	if !ok {
		return errDeviceNotFound
	}

	return fn(d)
}

// Close closes every device in the registry.
func (m *deviceManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for name, d := range m.devices {
		if err := d.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unable to close device %q: %w", name, err)
		}
		delete(m.devices, name)
	}

	return firstErr
}
