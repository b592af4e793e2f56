// Package health exposes liveness and readiness probes for a running
// monowheel. Readiness aggregates per-vehicle checks: a destroyed vehicle or
// one below its fuel or durability reserve reports unhealthy.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check returns an error if the component is unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the aggregated health of every registered check.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents the health status of an individual check.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks  map[string]HealthCheck
	timeout time.Duration
	mu      sync.RWMutex
}

// NewHealthChecker creates a checker whose readiness probe gives the checks
// 5 seconds to answer.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks:  make(map[string]HealthCheck),
		timeout: 5 * time.Second,
	}
}

// AddCheck registers check, replacing any check with the same name.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth runs every check. The overall status is healthy only if all
// checks pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: StatusHealthy,
		Checks: make(map[string]ComponentHealth, len(hc.checks)),
	}
	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = StatusUnhealthy
			status.Checks[name] = ComponentHealth{Status: StatusUnhealthy, Message: err.Error()}
			continue
		}
		status.Checks[name] = ComponentHealth{Status: StatusHealthy}
	}
	return status
}

// LivenessHandler answers 200 while the process is running.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// ReadinessHandler answers 200 when every check passes and 503 otherwise,
// with the per-check status as the body.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), hc.timeout)
	defer cancel()

	health := hc.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")
	if health.Status == StatusHealthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}

// Handler routes /health/live and /health/ready.
func (hc *HealthChecker) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", hc.LivenessHandler)
	mux.HandleFunc("/health/ready", hc.ReadinessHandler)
	return mux
}

// Vehicle is the read side of a vehicle controller.
type Vehicle interface {
	ID() string
	Destroyed() bool
	Fuel() float64
	Durability() float64
}

// VehicleHealthCheck fails once the vehicle has been torn down.
type VehicleHealthCheck struct {
	vehicle Vehicle
}

// NewVehicleHealthCheck creates a check for v.
func NewVehicleHealthCheck(v Vehicle) *VehicleHealthCheck {
	return &VehicleHealthCheck{vehicle: v}
}

// Name returns "vehicle/<id>".
func (c *VehicleHealthCheck) Name() string {
	return "vehicle/" + c.vehicle.ID()
}

// Check fails when the vehicle is destroyed.
func (c *VehicleHealthCheck) Check(ctx context.Context) error {
	if c.vehicle.Destroyed() {
		return fmt.Errorf("vehicle %s destroyed", c.vehicle.ID())
	}
	return nil
}

// ReserveHealthCheck fails when fuel or durability drops below a reserve.
type ReserveHealthCheck struct {
	vehicle       Vehicle
	minFuel       float64
	minDurability float64
}

// NewReserveHealthCheck creates a reserve check for v. A zero minimum
// disables that side of the check.
func NewReserveHealthCheck(v Vehicle, minFuel, minDurability float64) *ReserveHealthCheck {
	return &ReserveHealthCheck{vehicle: v, minFuel: minFuel, minDurability: minDurability}
}

// Name returns "reserve/<id>".
func (c *ReserveHealthCheck) Name() string {
	return "reserve/" + c.vehicle.ID()
}

// Check verifies both reserves.
func (c *ReserveHealthCheck) Check(ctx context.Context) error {
	if fuel := c.vehicle.Fuel(); c.minFuel > 0 && fuel < c.minFuel {
		return fmt.Errorf("fuel %.1f below reserve %.1f", fuel, c.minFuel)
	}
	if durability := c.vehicle.Durability(); c.minDurability > 0 && durability < c.minDurability {
		return fmt.Errorf("durability %.1f below reserve %.1f", durability, c.minDurability)
	}
	return nil
}
