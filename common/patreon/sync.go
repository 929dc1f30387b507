package patreon

import (
	"strconv"

	"emperror.dev/errors"
	"github.com/StikStore/stikstore.github.io/common/prom"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("p", "patreon")

// Syncer runs one sync: resolve the campaign, collect its members, rank
// them and write the snapshot.
type Syncer struct {
	Conf *Config
	API  API
}

type Result struct {
	CampaignID string

	// NoCampaign is set when the account has no campaign, nothing else is
	// filled in then
	NoCampaign bool

	TopTiers    []*Tier
	Members     int
	Tiers       int
	Pages       int
	Subscribers []*Subscriber

	// Written is false on dry runs and when there was no campaign
	Written bool
}

func NewSyncer(conf *Config, api API) *Syncer {
	return &Syncer{
		Conf: conf,
		API:  api,
	}
}

// Run performs the sync. Any error means the snapshot file was not touched.
func (s *Syncer) Run() (*Result, error) {
	logger.Info("Fetching Campaign ID...")
	campaignID, err := ResolveCampaign(s.API)
	if err != nil {
		if errors.Is(err, ErrNoCampaign) {
			logger.Info("No campaign found.")
			return &Result{NoCampaign: true}, nil
		}
		return nil, err
	}

	result := &Result{CampaignID: campaignID}
	l := logger.WithField("campaign", campaignID)

	l.Info("Fetching members for Campaign ", campaignID, "...")
	coll, err := CollectMembers(s.API, campaignID, s.Conf.PageSize)
	if err != nil {
		return nil, err
	}

	result.Members = len(coll.Members)
	result.Tiers = coll.Tiers.Len()
	result.Pages = coll.Pages
	prom.ActiveMembers.Set(float64(result.Members))
	prom.Tiers.Set(float64(result.Tiers))

	l.Infof("Collected %d active patrons of %d members and %d tiers over %d pages", result.Members, coll.Total, result.Tiers, result.Pages)

	result.TopTiers = TopTiers(coll.Tiers, s.Conf.TopTiers)
	l.Info("Top "+strconv.Itoa(s.Conf.TopTiers)+" Tiers identified: ", tierTitles(result.TopTiers))

	result.Subscribers = Rank(coll.Members, coll.Tiers, result.TopTiers)
	prom.Subscribers.Set(float64(len(result.Subscribers)))
	l.Infof("Found %d subscribers in top tiers.", len(result.Subscribers))

	if s.Conf.DryRun {
		l.Info("Dry run, not writing ", s.Conf.OutputFile)
		return result, nil
	}

	err = WriteSnapshot(s.Conf.OutputFile, result.Subscribers)
	if err != nil {
		return nil, err
	}

	result.Written = true
	l.Info("Successfully saved to ", s.Conf.OutputFile)
	return result, nil
}

func tierTitles(tiers []*Tier) []string {
	titles := make([]string, len(tiers))
	for i, t := range tiers {
		titles[i] = t.Title
	}
	return titles
}
