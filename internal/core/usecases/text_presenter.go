package usecases

import (
	"fmt"
	"strings"
	"time"

	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
)

// etaLayout is a 12-hour clock with zero-padded hour, e.g. "09:05 PM".
const etaLayout = "03:04 PM"

// TextPresenter renders a route as a numbered itinerary with totals and an
// arrival estimate.
type TextPresenter struct {
	clock ports.Clock
}

// NewTextPresenter creates a TextPresenter. A nil clock means the system clock.
func NewTextPresenter(clock ports.Clock) *TextPresenter {
	if clock == nil {
		clock = ports.SystemClock
	}
	return &TextPresenter{clock: clock}
}

// Render formats the route:
//
//	Directions:
//	1. Head north (120.0 meters)
//
//	Total distance: 1.50 km
//	Duration: 2 min
//	ETA: 10:30 AM
func (p *TextPresenter) Render(route *domain.Route) string {
	var b strings.Builder

	b.WriteString("Directions:")
	for i, step := range route.Steps {
		fmt.Fprintf(&b, "\n%d. %s (%.1f meters)", i+1, step.Instruction, step.DistanceMeters)
	}

	fmt.Fprintf(&b, "\n\nTotal distance: %.2f km", route.Summary.DistanceMeters/1000)
	b.WriteString("\n" + FormatDuration(route.Summary.DurationSeconds))

	eta := p.clock.Now().Add(route.Summary.Duration())
	b.WriteString("\nETA: " + eta.Format(etaLayout))

	return b.String()
}

// FormatDuration renders seconds as "Duration: H hr M min", or
// "Duration: M min" under an hour. Partial minutes are truncated.
func FormatDuration(seconds float64) string {
	d := time.Duration(seconds) * time.Second
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)

	if hours > 0 {
		return fmt.Sprintf("Duration: %d hr %d min", hours, minutes)
	}
	return fmt.Sprintf("Duration: %d min", minutes)
}
