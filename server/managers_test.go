package server

import (
	"sync"
	"testing"
	"time"

	"github.com/gloworm-vision/gloworm-io/device"
	"github.com/gloworm-vision/gloworm-io/gpio"
	"github.com/gloworm-vision/gloworm-io/gpio/gpiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeviceManager(chip gpio.Chip) *deviceManager {
	return &deviceManager{
		chip:    chip,
		devices: make(map[string]device.Device),
		mu:      new(sync.Mutex),
	}
}

// Devices aren't safe for concurrent use, so the manager has to serialize
// access to them. Overlapping blink requests used to race on the device's
// task handle, orphaning a blink goroutine that no later off could reach.
func TestConcurrentBlinksSerialize(t *testing.T) {
	chip := gpiotest.NewChip()

	m := newDeviceManager(chip)
	defer m.Close()

	require.NoError(t, m.Update("led", device.Config{Kind: device.KindLED, Pin: 17}))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := m.Do("led", func(d device.Device) error {
				return d.(device.Blinker).Blink(5*time.Millisecond, 5*time.Millisecond, device.Forever)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	err := m.Do("led", func(d device.Device) error {
		return d.(device.Switch).Off()
	})
	require.NoError(t, err)

	// every spawned blink must be reachable from Off; give any orphan time to
	// show itself
	time.Sleep(30 * time.Millisecond)
	writes := len(chip.Line(17).Writes())
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, writes, len(chip.Line(17).Writes()), "a blink survived Off")
	assert.Equal(t, gpio.Low, chip.Line(17).Level())
}

func TestDoTakesExclusiveAccess(t *testing.T) {
	chip := gpiotest.NewChip()

	m := newDeviceManager(chip)
	defer m.Close()

	require.NoError(t, m.Update("led", device.Config{Kind: device.KindLED, Pin: 17}))

	// a second Do can't enter while the first holds the device
	entered := make(chan struct{})
	release := make(chan struct{})

	go m.Do("led", func(d device.Device) error {
		close(entered)
		<-release

		return nil
	})

	<-entered

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Do("led", func(d device.Device) error { return nil })
	}()

	select {
	case <-done:
		t.Fatal("second Do ran while the first held the device")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-done
}
