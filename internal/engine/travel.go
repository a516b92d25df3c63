package engine

import (
	"fmt"
	"time"
)

// Travel follows the shared time-gated pattern: Idle → Pending(completion
// timestamp) → Idle. Readiness is always "now >= timestamp" against the
// wall clock, never a ticked-down counter, so arrivals resolve correctly
// after arbitrarily long offline gaps.

// StartTravel pays the travel cost and books the single pending journey.
func (g *Game) StartTravel(destinationID string) error {
	st := g.st
	if st.TravelDestination != nil {
		return fmt.Errorf("already travelling: %w", ErrBusy)
	}
	dest := st.LocationByID(destinationID)
	if dest == nil {
		return fmt.Errorf("location %q: %w", destinationID, ErrUnknownID)
	}
	if dest.ID == st.CurrentLocationID {
		return fmt.Errorf("already at %q: %w", destinationID, ErrValidation)
	}
	if st.Stones < dest.TravelCost {
		return fmt.Errorf("travel to %q needs %.0f stones: %w", destinationID, dest.TravelCost, ErrInsufficientFunds)
	}

	st.Stones -= dest.TravelCost
	st.TravelDestination = &dest.ID
	at := g.now().Add(time.Duration(dest.TravelTime * float64(time.Second)))
	st.TravelCompleteAt = &at
	g.addHistory(fmt.Sprintf("Bạn lên đường tới %s.", dest.Name))
	return nil
}

// resolveTravel completes a pending journey once its timestamp has passed:
// the current location updates and both pending fields clear atomically.
// Folded into Tick and also safe to call on any read path.
func (g *Game) resolveTravel() {
	st := g.st
	if st.TravelDestination == nil || st.TravelCompleteAt == nil {
		return
	}
	if g.now().Before(*st.TravelCompleteAt) {
		return
	}
	st.CurrentLocationID = *st.TravelDestination
	st.TravelDestination = nil
	st.TravelCompleteAt = nil
	if loc := st.LocationByID(st.CurrentLocationID); loc != nil {
		g.addHistory(fmt.Sprintf("Bạn đã đến %s.", loc.Name))
		g.log.Info("travel complete", "location", loc.Name)
	}
}

// TravelRemaining reports time left on the pending journey, resolving an
// elapsed one first. Zero means no travel is pending.
func (g *Game) TravelRemaining() time.Duration {
	g.resolveTravel()
	if g.st.TravelCompleteAt == nil {
		return 0
	}
	if rem := g.st.TravelCompleteAt.Sub(g.now()); rem > 0 {
		return rem
	}
	return 0
}
