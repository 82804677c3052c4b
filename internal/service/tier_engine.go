package service

import (
	"sort"

	"stayloyal/internal/domain"
	"stayloyal/internal/models"
)

// QualifyTier picks the tier a guest belongs to given lifetime totals, the
// program's calculation mode and a ladder snapshot. It is a pure function:
// same inputs, same answer.
//
// The ladder is walked highest first and the first qualifying tier wins.
// COMBINED requires both thresholds. When nothing qualifies the default tier
// is returned, then the lowest rung, then nil for an empty ladder.
func QualifyTier(totalPoints, totalStays int, mode string, ladder []models.LoyaltyTier) *models.LoyaltyTier {
	if len(ladder) == 0 {
		return nil
	}
	tiers := make([]models.LoyaltyTier, len(ladder))
	copy(tiers, ladder)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].SortOrder > tiers[j].SortOrder })

	for i := range tiers {
		t := &tiers[i]
		var qualifies bool
		switch mode {
		case domain.TierModeStays:
			qualifies = totalStays >= t.MinStays
		case domain.TierModeCombined:
			qualifies = totalPoints >= t.MinPoints && totalStays >= t.MinStays
		default: // POINTS
			qualifies = totalPoints >= t.MinPoints
		}
		if qualifies {
			return t
		}
	}

	for i := range tiers {
		if tiers[i].IsDefault {
			return &tiers[i]
		}
	}
	// lowest sort order is last after the descending sort
	return &tiers[len(tiers)-1]
}

// NextTier returns the next rung above the guest's current tier, ascending
// by sort order, or nil at the top of the ladder.
func NextTier(current *models.LoyaltyTier, ladder []models.LoyaltyTier) *models.LoyaltyTier {
	currentOrder := -1
	if current != nil {
		currentOrder = current.SortOrder
	}
	tiers := make([]models.LoyaltyTier, len(ladder))
	copy(tiers, ladder)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].SortOrder < tiers[j].SortOrder })
	for i := range tiers {
		if tiers[i].SortOrder > currentOrder {
			return &tiers[i]
		}
	}
	return nil
}
