package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gloworm-vision/gloworm-io/device"
	"github.com/gloworm-vision/gloworm-io/gpio"
	"github.com/gloworm-vision/gloworm-io/store"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// Server exposes the device registry over HTTP: device configs are read and
// written through the store, and live devices are controlled through RPC
// endpoints.
type Server struct {
	Addr string

	Store  store.Store
	Chip   gpio.Chip
	Logger *logrus.Logger

	deviceManager *deviceManager
}

func (s *Server) Run(ctx context.Context) error {
	if err := s.init(); err != nil {
		return fmt.Errorf("unable to initialize: %w", err)
	}
	defer s.deviceManager.Close()

	httpServer := &http.Server{
		Addr:              s.Addr,
		Handler:           s.routes(),
		ReadTimeout:       time.Second * 15,
		ReadHeaderTimeout: time.Second * 15,
		IdleTimeout:       time.Second * 30,
		MaxHeaderBytes:    4096,
	}

	listenErrs := make(chan error)
	go func() {
		s.Logger.WithField("addr", s.Addr).Info("serving http")
		listenErrs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-listenErrs:
		return err
	case <-ctx.Done():
		return httpServer.Shutdown(ctx)
	}
}

func (s *Server) routes() *httprouter.Router {
	mux := httprouter.New()

	mux.HandlerFunc(http.MethodGet, "/devices", s.devices)
	mux.HandlerFunc(http.MethodGet, "/devices/:name", s.getDevice)
	mux.HandlerFunc(http.MethodPut, "/devices/:name", s.putDevice)
	mux.HandlerFunc(http.MethodDelete, "/devices/:name", s.deleteDevice)
	mux.HandlerFunc(http.MethodGet, "/devices/:name/value", s.deviceValue)
	mux.HandlerFunc(http.MethodPost, "/devices/:name/rpc/:method", s.deviceRPC)

	return mux
}

// init builds the device registry from every config in the store. Devices
// that can't be built (say, their pin is taken by something outside our
// control) are logged and skipped so the rest still come up.
func (s *Server) init() error {
	s.deviceManager = &deviceManager{
		chip:    s.Chip,
		devices: make(map[string]device.Device),
		mu:      new(sync.Mutex),
	}

	names, err := s.Store.ListDeviceConfigs()
	if err != nil {
		return fmt.Errorf("unable to list device configs: %w", err)
	}

	for _, name := range names {
		config, err := s.Store.DeviceConfig(name)
		if err != nil {
			s.Logger.WithField("device", name).WithError(err).Warn("unable to read device config")
			continue
		}

		if err := s.deviceManager.Update(name, config); err != nil {
			s.Logger.WithField("device", name).WithError(err).Warn("unable to build device")
		}
	}

	return nil
}
