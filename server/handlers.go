package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gloworm-vision/gloworm-io/device"
	"github.com/gloworm-vision/gloworm-io/store"
	"github.com/julienschmidt/httprouter"
)

func respond(res http.ResponseWriter, v interface{}, code int) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(code)

	if v == nil {
		return
	}

	if err, ok := v.(error); ok {
		v = map[string]string{"error": err.Error()}
	}

	json.NewEncoder(res).Encode(v)
}

func (s *Server) devices(res http.ResponseWriter, req *http.Request) {
	names, err := s.Store.ListDeviceConfigs()
	if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, names, http.StatusOK)
}

func (s *Server) getDevice(res http.ResponseWriter, req *http.Request) {
	params := httprouter.ParamsFromContext(req.Context())
	name := params.ByName("name")

	config, err := s.Store.DeviceConfig(name)
	if errors.Is(err, store.ErrNotExist) {
		respond(res, err, http.StatusNotFound)
		return
	}
	if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, config, http.StatusOK)
}

func (s *Server) putDevice(res http.ResponseWriter, req *http.Request) {
	params := httprouter.ParamsFromContext(req.Context())
	name := params.ByName("name")

	var config device.Config
	if err := json.NewDecoder(req.Body).Decode(&config); err != nil {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}

	// build the device first so a bad config never makes it into the store
	if err := s.deviceManager.Update(name, config); err != nil {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}

	if err := s.Store.PutDeviceConfig(name, config); err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, nil, http.StatusNoContent)
}

func (s *Server) deleteDevice(res http.ResponseWriter, req *http.Request) {
	params := httprouter.ParamsFromContext(req.Context())
	name := params.ByName("name")

	err := s.Store.DeleteDeviceConfig(name)
	if errors.Is(err, store.ErrNotExist) {
		respond(res, err, http.StatusNotFound)
		return
	}
	if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	if err := s.deviceManager.Remove(name); err != nil && !errors.Is(err, errDeviceNotFound) {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, nil, http.StatusNoContent)
}

func (s *Server) deviceValue(res http.ResponseWriter, req *http.Request) {
	params := httprouter.ParamsFromContext(req.Context())
	name := params.ByName("name")

	var value interface{}
	err := s.deviceManager.Do(name, func(d device.Device) error {
		switch d := d.(type) {
		case device.Dimmer:
			value = d.Value()
			return nil
		case device.Switch:
			active, err := d.IsActive()
			if err != nil {
				return err
			}
			value = active
			return nil
		default:
			return fmt.Errorf("device %q has no readable value", name)
		}
	})
	if errors.Is(err, errDeviceNotFound) {
		respond(res, err, http.StatusNotFound)
		return
	}
	if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, map[string]interface{}{"value": value}, http.StatusOK)
}

// rpcParams is the body of a device RPC. Times are in seconds, matching the
// device config vocabulary rather than Go durations.
type rpcParams struct {
	OnTime      float64 `json:"onTime,omitempty"`
	OffTime     float64 `json:"offTime,omitempty"`
	FadeInTime  float64 `json:"fadeInTime,omitempty"`
	FadeOutTime float64 `json:"fadeOutTime,omitempty"`

	// Times is how many cycles to run; leave unset to repeat until stopped.
	Times *int `json:"times,omitempty"`

	// Value is the duty cycle for setValue.
	Value float64 `json:"value,omitempty"`
}

func (p rpcParams) repeat() device.Repeat {
	if p.Times == nil {
		return device.Forever
	}

	return device.Times(*p.Times)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (s *Server) deviceRPC(res http.ResponseWriter, req *http.Request) {
	routeParams := httprouter.ParamsFromContext(req.Context())
	name := routeParams.ByName("name")
	method := routeParams.ByName("method")

	var params rpcParams
	if req.ContentLength != 0 {
		if err := json.NewDecoder(req.Body).Decode(&params); err != nil {
			respond(res, err, http.StatusUnprocessableEntity)
			return
		}
	}

	err := s.deviceManager.Do(name, func(d device.Device) error {
		return call(d, method, params)
	})
	if errors.Is(err, errDeviceNotFound) {
		respond(res, err, http.StatusNotFound)
		return
	}
	if errors.Is(err, errUnsupportedMethod) {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, nil, http.StatusNoContent)
}

var errUnsupportedMethod = errors.New("method not supported by device")

// call dispatches an RPC method to whichever capability of the device
// implements it.
func call(d device.Device, method string, params rpcParams) error {
	switch method {
	case "on":
		if sw, ok := d.(device.Switch); ok {
			return sw.On()
		}
	case "off", "stop":
		if sw, ok := d.(device.Switch); ok {
			return sw.Off()
		}
	case "toggle":
		if sw, ok := d.(device.Switch); ok {
			return sw.Toggle()
		}
	case "blink", "beep":
		switch d := d.(type) {
		case *device.PWM:
			return d.Blink(seconds(params.OnTime), seconds(params.OffTime),
				seconds(params.FadeInTime), seconds(params.FadeOutTime), params.repeat())
		case device.Blinker:
			return d.Blink(seconds(params.OnTime), seconds(params.OffTime), params.repeat())
		}
	case "pulse":
		if p, ok := d.(*device.PWM); ok {
			return p.Pulse(seconds(params.FadeInTime), seconds(params.FadeOutTime), params.repeat())
		}
	case "setValue":
		if dim, ok := d.(device.Dimmer); ok {
			return dim.SetValue(params.Value)
		}
	}

	return errUnsupportedMethod
}
