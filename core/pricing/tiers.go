// Package pricing resolves volume tiers and computes enterprise seat quotes.
package pricing

import (
	"seatquote/core/catalog"
	"seatquote/core/types"
	"seatquote/internal/errors"
)

// ValidateSeats rejects seat counts outside [lo, hi]
func ValidateSeats(seats, lo, hi int) error {
	if seats < lo || seats > hi {
		return errors.Newf(errors.TypeInput, "seat count must be between %d and %d, got %d", lo, hi, seats).
			WithContext("seats", seats)
	}
	return nil
}

// ResolveTier returns the tier covering seats. tiers must be ordered by
// MinSeats ascending, as Catalog.Tiers returns them. The scan runs from the
// highest threshold downward and the first tier whose minimum is <= seats
// wins, so a boundary count such as 10 lands in the tier that starts at 10.
func ResolveTier(tiers []types.VolumeTier, seats int) (types.VolumeTier, error) {
	for i := len(tiers) - 1; i >= 0; i-- {
		if tiers[i].MinSeats <= seats {
			return tiers[i], nil
		}
	}
	return types.VolumeTier{}, errors.Newf(errors.TypeInput, "no volume tier covers %d seats", seats)
}

// SnapSeats returns the seat count selected when a tier is picked directly:
// the tier's minimum.
func SnapSeats(c *catalog.Catalog, id types.TierID) (int, error) {
	tier, err := c.Tier(id)
	if err != nil {
		return 0, err
	}
	return tier.MinSeats, nil
}
