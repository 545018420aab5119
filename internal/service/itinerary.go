package service

import (
	"fmt"

	"github.com/solerao/campusmetro/internal/domain"
)

// buildItinerary renders the turn-by-turn description the front-end
// displays next to the highlighted route.
func buildItinerary(stops []domain.RouteStop, segments []domain.RouteSegment) []string {
	if len(stops) == 0 {
		return nil
	}
	if len(stops) == 1 {
		return []string{fmt.Sprintf("You are already at %s.", stops[0].Name)}
	}

	steps := make([]string, 0, len(segments)+2)
	steps = append(steps, fmt.Sprintf("Start at %s on the %s line.", stops[0].Name, segments[0].Line))
	for _, seg := range segments {
		if seg.Transfer {
			steps = append(steps, fmt.Sprintf("At %s, transfer to the %s line.", seg.FromName, seg.Line))
		}
	}
	steps = append(steps, fmt.Sprintf("Arrive at %s after %s.", stops[len(stops)-1].Name, hopCount(len(segments))))
	return steps
}

func hopCount(n int) string {
	if n == 1 {
		return "1 stop"
	}
	return fmt.Sprintf("%d stops", n)
}
