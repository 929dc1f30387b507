package patreon

import (
	"emperror.dev/errors"
)

// ErrNoCampaign is returned when the authenticated account has no campaign.
// Not a failure, there is simply nothing to sync.
var ErrNoCampaign = errors.New("no campaign found")

// ResolveCampaign returns the id of the first campaign owned by the
// authenticated account.
func ResolveCampaign(api API) (string, error) {
	resp, err := api.FetchIdentity()
	if err != nil {
		return "", errors.WithMessage(err, "fetch identity")
	}

	if resp.Data.Attributes != nil && resp.Data.Attributes.FullName != "" {
		logger.Info("Authenticated as ", resp.Data.Attributes.FullName)
	}

	id, ok := resp.FirstCampaignID()
	if !ok {
		return "", ErrNoCampaign
	}

	return id, nil
}
