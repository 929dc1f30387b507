package patreon

import (
	"sort"
)

// Subscriber is one entry of the snapshot file.
type Subscriber struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}

// TopTiers returns the n most expensive tiers, most expensive first. Equally
// priced tiers keep the order they were first seen in.
func TopTiers(tiers *TierSet, n int) []*Tier {
	sorted := tiers.Ordered()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})

	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

// HighestTier returns the most expensive of the member's tiers that exist in
// tiers. On equal amounts the one listed first on the member wins.
func HighestTier(m *Member, tiers *TierSet) (*Tier, bool) {
	var best *Tier
	for _, id := range m.TierIDs {
		t, ok := tiers.Get(id)
		if !ok {
			continue
		}

		if best == nil || t.Amount > best.Amount {
			best = t
		}
	}

	return best, best != nil
}

// Rank selects the members entitled to at least one of the top tiers and
// pairs each with their most expensive tier, which is not necessarily one
// of the top tiers. The result is sorted by that tier's amount, highest
// first, keeping member order on ties.
func Rank(members []*Member, tiers *TierSet, top []*Tier) []*Subscriber {
	topIDs := make(map[string]bool, len(top))
	for _, t := range top {
		topIDs[t.ID] = true
	}

	type ranked struct {
		sub    *Subscriber
		amount int
	}

	var selected []ranked
	for _, m := range members {
		if !entitledToAny(m, topIDs) {
			continue
		}

		best, ok := HighestTier(m, tiers)
		if !ok {
			logger.WithField("member", m.ID).Debug("No known tier for qualifying member, dropping")
			continue
		}

		selected = append(selected, ranked{
			sub:    &Subscriber{Name: m.Name, Tier: best.Title},
			amount: best.Amount,
		})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].amount > selected[j].amount
	})

	out := make([]*Subscriber, len(selected))
	for i, v := range selected {
		out[i] = v.sub
	}
	return out
}

func entitledToAny(m *Member, ids map[string]bool) bool {
	for _, id := range m.TierIDs {
		if ids[id] {
			return true
		}
	}
	return false
}
