package patreonapi

type IdentityResponse struct {
	Data     IdentityData `json:"data"`
	Included []*Include   `json:"included"`
}

type IdentityData struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Attributes    *UserAttributes `json:"attributes"`
	Relationships Relationships   `json:"relationships"`
}

type UserAttributes struct {
	FullName string `json:"full_name"`
	Vanity   string `json:"vanity"`
}

type CampaignAttributes struct {
	CreationName string `json:"creation_name"`
	Vanity       string `json:"vanity"`
}

type TierAttributes struct {
	Title       string `json:"title"`
	AmountCents int    `json:"amount_cents"`
}

// FirstCampaignID returns the id of the first side-loaded campaign.
func (r *IdentityResponse) FirstCampaignID() (string, bool) {
	for _, v := range r.Included {
		if v != nil && v.Type == TypeCampaign && v.ID != "" {
			return v.ID, true
		}
	}

	return "", false
}
