package filtering

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dnlam/staff-matcher/internal/hrapi"
)

type statusLister interface {
	ActiveStatus() (map[string]bool, error)
}

type bookingLister interface {
	ListBookings(startDate time.Time, windowDays int) (*hrapi.Bookings, error)
}

type availabilityFilter struct {
	deps     *AvailabilityDeps
	cfg      *AvailabilityConfig
	disabled bool
}

type AvailabilityDeps struct {
	Status   statusLister
	Bookings bookingLister
	Logger   *zap.Logger
}

type AvailabilityConfig struct {
	// StartDate is the project start; bookings are checked over the
	// window ending at this date.
	StartDate      time.Time
	MaxBookedHours float64
	WindowDays     int
}

// NewAvailability creates a filter that removes inactive employees and
// employees overbooked around the project start date. HR data being
// unavailable keeps everyone in: availability filtering fails open.
func NewAvailability(cfg *AvailabilityConfig, deps *AvailabilityDeps) Filter {
	return &availabilityFilter{
		deps: deps,
		cfg:  cfg,
	}
}

func (f *availabilityFilter) Name() string { return "availability" }

func (f *availabilityFilter) Disable(reason string) {
	f.disabled = true
	if f.deps != nil && f.deps.Logger != nil {
		f.deps.Logger.Info("availability filter disabled", zap.String("reason", reason))
	}
}

func (f *availabilityFilter) IsEnabled() bool { return !f.disabled }

func (f *availabilityFilter) Validate() error {
	if f.deps == nil || f.deps.Status == nil || f.deps.Bookings == nil {
		return fmt.Errorf("hr api access is required")
	}
	if f.deps.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if f.cfg == nil || f.cfg.StartDate.IsZero() {
		return fmt.Errorf("project start date is required")
	}
	return nil
}

func (f *availabilityFilter) Apply(_ context.Context, e *hrapi.Employees) (*hrapi.Employees, Step, error) {
	initial := e.Len()

	inactive := f.inactiveCodes()
	overbooked := f.overbookedCodes()

	left := e.Keep(func(emp *hrapi.Employee) bool {
		return !inactive[emp.EmpCode] && !overbooked[emp.EmpCode]
	})

	return left, Step{Initial: initial, Dropped: initial - left.Len(), Left: left.Len()}, nil
}

// inactiveCodes returns employees explicitly flagged inactive. Employees
// missing from the status list are kept.
func (f *availabilityFilter) inactiveCodes() map[string]bool {
	status, err := f.deps.Status.ActiveStatus()
	if err != nil {
		f.deps.Logger.Warn("active status unavailable, keeping all employees", zap.Error(err))
		return nil
	}

	inactive := make(map[string]bool)
	for code, active := range status {
		if !active {
			inactive[code] = true
		}
	}
	return inactive
}

func (f *availabilityFilter) overbookedCodes() map[string]bool {
	bookings, err := f.deps.Bookings.ListBookings(f.cfg.StartDate, f.cfg.WindowDays)
	if err != nil {
		f.deps.Logger.Warn("bookings unavailable, keeping all employees", zap.Error(err))
		return nil
	}

	maxHours := f.cfg.MaxBookedHours
	if maxHours <= 0 {
		maxHours = hrapi.DefaultMaxBookedHours
	}

	return bookings.OverbookedCodes(maxHours)
}
