package main

import (
	"time"

	"github.com/gloworm-vision/gloworm-io/device"
	"github.com/gloworm-vision/gloworm-io/gpio"
)

func main() {
	chip, err := gpio.DialPigpio("localhost:8888")
	if err != nil {
		panic(err)
	}
	defer chip.Close()

	led, err := device.NewLED(chip, 17)
	if err != nil {
		panic(err)
	}

	if err := led.Blink(time.Second/4, time.Second/4, device.Times(10)); err != nil {
		panic(err)
	}
	if err := led.Wait(); err != nil {
		panic(err)
	}
	if err := led.Close(); err != nil {
		panic(err)
	}

	pwm, err := device.NewPWM(chip, 18, device.DefaultPWMFrequency)
	if err != nil {
		panic(err)
	}
	defer pwm.Close()

	if err := pwm.Pulse(time.Second, time.Second, device.Times(5)); err != nil {
		panic(err)
	}
	if err := pwm.Wait(); err != nil {
		panic(err)
	}
}
