package vehicle

import (
	"github.com/opd-ai/go-monowheel/pkg/event"
	"github.com/opd-ai/go-monowheel/pkg/logging"
	"github.com/opd-ai/go-monowheel/pkg/telemetry"
)

// Option customises a Controller.
type Option func(*Controller)

// WithID names the vehicle in logs, events and metrics.
func WithID(id string) Option {
	return func(c *Controller) { c.id = id }
}

// WithLogger replaces the default stdout logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithRecorder reports metrics through r.
func WithRecorder(r *telemetry.Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithBus publishes vehicle events on bus and feeds collisions published
// there into the controller.
func WithBus(bus *event.Bus) Option {
	return func(c *Controller) { c.bus = bus }
}
