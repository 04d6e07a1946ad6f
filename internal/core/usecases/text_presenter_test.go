package usecases_test

import (
	"strings"
	"testing"

	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/usecases"
)

func TestTextPresenter_Render(t *testing.T) {
	p := usecases.NewTextPresenter(fixedClock(10, 0))

	got := p.Render(sampleRoute(domain.ProfileDriving))
	want := strings.Join([]string{
		"Directions:",
		"1. Head west on Gerokstraße (1000.0 meters)",
		"2. Arrive at Am Götzenberg, on the right (500.0 meters)",
		"",
		"Total distance: 1.50 km",
		"Duration: 2 min",
		"ETA: 10:02 AM",
	}, "\n")

	if got != want {
		t.Errorf("unexpected rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestTextPresenter_ETA(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		min      int
		duration float64
		want     string
	}{
		{"half hour", 10, 0, 1800, "ETA: 10:30 AM"},
		{"crosses noon", 11, 45, 1800, "ETA: 12:15 PM"},
		{"evening zero padded", 20, 55, 600, "ETA: 09:05 PM"},
		{"midnight", 23, 30, 1800, "ETA: 12:00 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := usecases.NewTextPresenter(fixedClock(tt.hour, tt.min))
			route := &domain.Route{Summary: domain.Summary{DurationSeconds: tt.duration}}

			got := p.Render(route)
			if !strings.HasSuffix(got, "\n"+tt.want) {
				t.Errorf("expected suffix %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "Duration: 0 min"},
		{59, "Duration: 0 min"},
		{125, "Duration: 2 min"},
		{3599, "Duration: 59 min"},
		{3600, "Duration: 1 hr 0 min"},
		{3725, "Duration: 1 hr 2 min"},
		{7384.9, "Duration: 2 hr 3 min"},
	}

	for _, tt := range tests {
		if got := usecases.FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTextPresenter_NoSteps(t *testing.T) {
	p := usecases.NewTextPresenter(fixedClock(10, 0))
	got := p.Render(&domain.Route{})

	if !strings.HasPrefix(got, "Directions:\n\nTotal distance: 0.00 km") {
		t.Errorf("unexpected rendering for empty route: %q", got)
	}
}
