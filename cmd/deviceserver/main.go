package main

import (
	"context"
	"errors"

	"github.com/gloworm-vision/gloworm-io/gpio"
	"github.com/gloworm-vision/gloworm-io/server"
	"github.com/gloworm-vision/gloworm-io/store"
	"github.com/sirupsen/logrus"
)

func main() {
	db, err := store.OpenBBolt("store.db", 0666, nil)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	chipConfig, err := db.ChipConfig()
	if err != nil {
		if !errors.Is(err, store.ErrNotExist) {
			panic(err)
		}

		// nothing stored yet, assume a local pigpio daemon
		chipConfig = gpio.Config{Pigpio: &gpio.PigpioConfig{Addr: "localhost:8888"}}
	}

	chip, err := gpio.New(chipConfig)
	if err != nil {
		panic(err)
	}
	defer chip.Close()

	server := server.Server{Addr: ":8080", Store: db, Chip: chip, Logger: logrus.New()}

	if err := server.Run(context.Background()); err != nil {
		panic(err)
	}
}
