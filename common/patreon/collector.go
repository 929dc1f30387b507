package patreon

import (
	"strconv"

	"emperror.dev/errors"
	"github.com/StikStore/stikstore.github.io/common/patreon/patreonapi"
	"github.com/StikStore/stikstore.github.io/common/prom"
)

type Member struct {
	ID     string
	Name   string
	Status string

	// TierIDs are the currently entitled tiers, in the order the api lists them
	TierIDs []string
}

// Collection is everything gathered from the members listing.
type Collection struct {
	// Members holds only active patrons
	Members []*Member
	Tiers   *TierSet
	Pages   int

	// Total is the member count the first page reported for the whole
	// listing, 0 when it was not sent
	Total int
}

// pageBatch is what one page contributes to a Collection.
type pageBatch struct {
	members []*Member
	tiers   []*Tier
}

// CollectMembers walks every page of the campaign's members. A failing page
// fails the whole collection.
func CollectMembers(api API, campaignID string, pageSize int) (*Collection, error) {
	coll := &Collection{
		Tiers: NewTierSet(),
	}

	seenLinks := make(map[string]bool)

	resp, err := api.FetchMembers(campaignID, pageSize)
	for {
		if err != nil {
			page := coll.Pages + 1
			return nil, errors.WithDetails(errors.WithMessage(err, "fetch members page "+strconv.Itoa(page)), "page", page)
		}

		if coll.Pages == 0 && resp.Meta.Pagination != nil {
			coll.Total = resp.Meta.Pagination.Total
		}

		coll.merge(batchFromPage(resp))
		coll.Pages++
		prom.PagesFetched.Inc()

		next := resp.Links.Next
		if next == "" {
			break
		}

		if seenLinks[next] {
			return nil, errors.New("members pagination loop, next link repeated: " + next)
		}
		seenLinks[next] = true

		logger.WithField("total", coll.Total).Debugf("Fetching members page %d, %d members so far", coll.Pages+1, len(coll.Members))
		resp, err = api.FetchMembersPage(next)
	}

	return coll, nil
}

func (c *Collection) merge(b pageBatch) {
	c.Members = append(c.Members, b.members...)
	for _, t := range b.tiers {
		c.Tiers.Add(t)
	}
}

func batchFromPage(resp *patreonapi.MembersResponse) pageBatch {
	var b pageBatch

	for _, m := range resp.Data {
		if m == nil {
			continue
		}

		if m.Attributes == nil {
			logger.WithField("member", m.ID).Warn("Member without attributes, skipping")
			continue
		}

		if m.Attributes.PatronStatus != patreonapi.PatronStatusActive {
			continue
		}

		b.members = append(b.members, &Member{
			ID:      m.ID,
			Name:    m.Attributes.FullName,
			Status:  m.Attributes.PatronStatus,
			TierIDs: m.Relationships.Tiers.IDs(),
		})
	}

	for _, inc := range resp.Tiers() {
		attrs := inc.Tier()
		if attrs == nil {
			logger.WithField("tier", inc.ID).Warn("Tier without attributes, skipping")
			continue
		}

		b.tiers = append(b.tiers, &Tier{
			ID:     inc.ID,
			Title:  attrs.Title,
			Amount: attrs.AmountCents,
		})
	}

	return b
}
