package patreon

type Tier struct {
	ID    string
	Title string

	// Amount is the monthly price in cents
	Amount int
}

// TierSet maps tier ids to tiers and remembers the order ids were first
// seen in, which is what ties between equally priced tiers fall back to.
type TierSet struct {
	order []string
	byID  map[string]*Tier
}

func NewTierSet() *TierSet {
	return &TierSet{
		byID: make(map[string]*Tier),
	}
}

// Add inserts or replaces t. Replacing keeps the original position.
// Returns true if the id was not seen before.
func (s *TierSet) Add(t *Tier) bool {
	cop := *t
	if _, ok := s.byID[t.ID]; ok {
		s.byID[t.ID] = &cop
		return false
	}

	s.order = append(s.order, t.ID)
	s.byID[t.ID] = &cop
	return true
}

func (s *TierSet) Get(id string) (*Tier, bool) {
	t, ok := s.byID[id]
	return t, ok
}

func (s *TierSet) Len() int {
	return len(s.order)
}

// Ordered returns the tiers in first seen order.
func (s *TierSet) Ordered() []*Tier {
	out := make([]*Tier, len(s.order))
	for i, id := range s.order {
		out[i] = s.byID[id]
	}
	return out
}
