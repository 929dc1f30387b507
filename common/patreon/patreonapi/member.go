package patreonapi

type MembersResponse struct {
	Data     []*MemberData `json:"data"`
	Included []*Include    `json:"included"`
	Links    Links         `json:"links"`
	Meta     Meta          `json:"meta"`
}

type MemberData struct {
	Type          string        `json:"type"`
	ID            string        `json:"id"`
	Relationships Relationships `json:"relationships"`

	Attributes *MemberAttributes `json:"attributes"`
}

const (
	PatronStatusActive   = "active_patron"
	PatronStatusDeclined = "declined_patron"
	PatronStatusFormer   = "former_patron"
)

type MemberAttributes struct {
	FullName     string `json:"full_name"`
	PatronStatus string `json:"patron_status"`
}

// Tiers returns the tier includes of the page.
func (r *MembersResponse) Tiers() []*Include {
	tiers := make([]*Include, 0, len(r.Included))
	for _, v := range r.Included {
		if v != nil && v.Type == TypeTier {
			tiers = append(tiers, v)
		}
	}
	return tiers
}
