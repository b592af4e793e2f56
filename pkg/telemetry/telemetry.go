// Package telemetry exports vehicle metrics through OpenTelemetry. Without a
// configured global provider every instrument is a no-op.
package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/opd-ai/go-monowheel/pkg/telemetry"

// Meter returns the global meter for this package.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type snapshot struct {
	fuel       float64
	durability float64
}

// Recorder owns the vehicle instruments. It is safe for concurrent use; the
// gauges report the last values handed to RecordResources.
type Recorder struct {
	ticks       metric.Int64Counter
	transitions metric.Int64Counter
	damage      metric.Float64Counter
	fuel        metric.Float64ObservableGauge
	durability  metric.Float64ObservableGauge

	registration metric.Registration

	mu       sync.RWMutex
	vehicles map[string]snapshot
}

// NewRecorder creates the instruments on m, or on the global meter when m
// is nil.
func NewRecorder(m metric.Meter) (*Recorder, error) {
	if m == nil {
		m = Meter()
	}
	r := &Recorder{vehicles: make(map[string]snapshot)}

	var err error
	r.ticks, err = m.Int64Counter(
		"monowheel.ticks",
		metric.WithDescription("Vehicle ticks processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick counter: %w", err)
	}

	r.transitions, err = m.Int64Counter(
		"monowheel.surface.transitions",
		metric.WithDescription("Surface classification changes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transition counter: %w", err)
	}

	r.damage, err = m.Float64Counter(
		"monowheel.damage",
		metric.WithDescription("Durability lost to collisions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}

	r.fuel, err = m.Float64ObservableGauge(
		"monowheel.fuel",
		metric.WithDescription("Remaining fuel"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fuel gauge: %w", err)
	}

	r.durability, err = m.Float64ObservableGauge(
		"monowheel.durability",
		metric.WithDescription("Remaining durability"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating durability gauge: %w", err)
	}

	r.registration, err = m.RegisterCallback(r.observe, r.fuel, r.durability)
	if err != nil {
		return nil, fmt.Errorf("registering resource callback: %w", err)
	}

	return r, nil
}

func (r *Recorder) observe(_ context.Context, o metric.Observer) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, s := range r.vehicles {
		attrs := metric.WithAttributes(attribute.String("vehicle", id))
		o.ObserveFloat64(r.fuel, s.fuel, attrs)
		o.ObserveFloat64(r.durability, s.durability, attrs)
	}
	return nil
}

// Tick counts one processed tick.
func (r *Recorder) Tick(ctx context.Context, vehicle string) {
	r.ticks.Add(ctx, 1, metric.WithAttributes(attribute.String("vehicle", vehicle)))
}

// SurfaceTransition counts a change to surface.
func (r *Recorder) SurfaceTransition(ctx context.Context, vehicle, surface string) {
	r.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("vehicle", vehicle),
		attribute.String("surface", surface),
	))
}

// Damage adds durability lost in one collision.
func (r *Recorder) Damage(ctx context.Context, vehicle string, amount float64) {
	if amount <= 0 {
		return
	}
	r.damage.Add(ctx, amount, metric.WithAttributes(attribute.String("vehicle", vehicle)))
}

// RecordResources stores the values the gauges report for vehicle.
func (r *Recorder) RecordResources(vehicle string, fuel, durability float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles[vehicle] = snapshot{fuel: fuel, durability: durability}
}

// Resources returns the stored values for vehicle.
func (r *Recorder) Resources(vehicle string) (fuel, durability float64, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.vehicles[vehicle]
	return s.fuel, s.durability, ok
}

// Forget stops reporting gauges for vehicle.
func (r *Recorder) Forget(vehicle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vehicles, vehicle)
}

// Close unregisters the gauge callback.
func (r *Recorder) Close() error {
	if r.registration == nil {
		return nil
	}
	return r.registration.Unregister()
}
