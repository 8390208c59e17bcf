package hrapi

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// BookingWindowDays is the default number of days before the project start
// date covered by a booking lookup.
const BookingWindowDays = 30

// DefaultMaxBookedHours is the daily-hour threshold above which an
// employee counts as overbooked.
const DefaultMaxBookedHours = 6.0

type Bookings struct {
	Items []*Booking
}

// Booking is a recorded commitment of an employee's time to another
// project within a date range.
type Booking struct {
	EmpCode   string  `json:"empCode"`
	DailyHour float64 `json:"dailyHour"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
}

// ListBookings fetches booking records for the window ending at the given
// project start date.
func (c *Client) ListBookings(startDate time.Time, windowDays int) (*Bookings, error) {
	if windowDays <= 0 {
		windowDays = BookingWindowDays
	}

	from := startDate.AddDate(0, 0, -windowDays)
	apiURL := fmt.Sprintf("%s/booking/byPlanner/%d/%s/%s",
		c.InsiderURL, c.plannerID,
		from.Format("2006-01-02"), startDate.Format("2006-01-02"),
	)

	var items []map[string]any
	if err := c.getJSON(apiURL, c.insiderToken, nil, &items); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	var bookings []*Booking
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           &bookings,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}

	c.logger.Debug("got bookings from HR api",
		zap.Int("count", len(bookings)),
		zap.String("from", from.Format("2006-01-02")),
		zap.String("to", startDate.Format("2006-01-02")),
	)

	return &Bookings{Items: bookings}, nil
}

func (b *Bookings) Len() int {
	return len(b.Items)
}

// OverbookedCodes returns the set of employee codes with any booking above
// the daily-hour threshold.
func (b *Bookings) OverbookedCodes(maxDailyHours float64) map[string]bool {
	codes := make(map[string]bool)
	for _, booking := range b.Items {
		if booking.DailyHour > maxDailyHours {
			codes[booking.EmpCode] = true
		}
	}
	return codes
}
