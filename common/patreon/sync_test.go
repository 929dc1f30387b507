package patreon

import (
	"io/ioutil"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/StikStore/stikstore.github.io/common/patreon/patreonapi"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIBase = "https://patreon.test/api/oauth2/v2"

const identityWithCampaign = `{
  "data": {"id": "u1", "type": "user", "attributes": {"full_name": "Creator"}},
  "included": [{"id": "c42", "type": "campaign", "attributes": {}}]
}`

const membersFirstPage = `{
  "data": [
    {"id": "m1", "type": "member",
     "attributes": {"full_name": "Alice", "patron_status": "active_patron"},
     "relationships": {"currently_entitled_tiers": {"data": [{"id": "t2", "type": "tier"}]}}},
    {"id": "m2", "type": "member",
     "attributes": {"full_name": "Bob", "patron_status": "declined_patron"},
     "relationships": {"currently_entitled_tiers": {"data": [{"id": "t1", "type": "tier"}]}}},
    {"id": "m3", "type": "member",
     "attributes": {"full_name": "Carol", "patron_status": "active_patron"},
     "relationships": {"currently_entitled_tiers": {"data": [{"id": "t3", "type": "tier"}]}}}
  ],
  "included": [
    {"id": "t1", "type": "tier", "attributes": {"title": "Legend", "amount_cents": 5000}},
    {"id": "t2", "type": "tier", "attributes": {"title": "Hero", "amount_cents": 1500}},
    {"id": "t3", "type": "tier", "attributes": {"title": "Fan", "amount_cents": 300}}
  ],
  "links": {"next": "https://patreon.test/api/oauth2/v2/campaigns/c42/members?page%5Bcursor%5D=p2"}
}`

const membersSecondPage = `{
  "data": [
    {"id": "m4", "type": "member",
     "attributes": {"full_name": "Dave & Co <3", "patron_status": "active_patron"},
     "relationships": {"currently_entitled_tiers": {"data": [{"id": "t1", "type": "tier"}, {"id": "t3", "type": "tier"}]}}}
  ],
  "included": [
    {"id": "t1", "type": "tier", "attributes": {"title": "Legend", "amount_cents": 5000}},
    {"id": "t3", "type": "tier", "attributes": {"title": "Fan", "amount_cents": 300}}
  ]
}`

const expectedSnapshot = `[
  {
    "name": "Dave & Co <3",
    "tier": "Legend"
  },
  {
    "name": "Alice",
    "tier": "Hero"
  }
]`

type syncFixture struct {
	mock   *httpmock.MockTransport
	conf   *Config
	syncer *Syncer
	auth   []string
}

func newSyncFixture(t *testing.T) *syncFixture {
	f := &syncFixture{
		mock: httpmock.NewMockTransport(),
		conf: &Config{
			AccessToken: "secret-token",
			OutputFile:  filepath.Join(t.TempDir(), "subscribers.json"),
			UserAgent:   patreonapi.DefaultUserAgent,
			APIBase:     testAPIBase,
			PageSize:    patreonapi.DefaultPageSize,
			TopTiers:    DefaultTopTiers,
		},
	}

	f.syncer = NewSyncer(f.conf, NewClient(f.conf, f.mock))
	return f
}

func (f *syncFixture) respond(path string, bodies func(req *http.Request) (int, string)) {
	f.mock.RegisterResponder("GET", testAPIBase+path, func(req *http.Request) (*http.Response, error) {
		f.auth = append(f.auth, req.Header.Get("Authorization"))
		status, body := bodies(req)
		return httpmock.NewStringResponse(status, body), nil
	})
}

func (f *syncFixture) respondIdentity(status int, body string) {
	f.respond("/identity", func(*http.Request) (int, string) { return status, body })
}

func (f *syncFixture) respondMembers() {
	f.respond("/campaigns/c42/members", func(req *http.Request) (int, string) {
		if req.URL.Query().Get("page[cursor]") == "p2" {
			return 200, membersSecondPage
		}
		return 200, membersFirstPage
	})
}

func writeExisting(t *testing.T, path string) {
	require.NoError(t, ioutil.WriteFile(path, []byte("previous"), 0644))
}

func readFile(t *testing.T, path string) string {
	b, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestSyncEndToEnd(t *testing.T) {
	f := newSyncFixture(t)
	f.respondIdentity(200, identityWithCampaign)
	f.respondMembers()

	result, err := f.syncer.Run()
	require.NoError(t, err)

	assert.Equal(t, "c42", result.CampaignID)
	assert.False(t, result.NoCampaign)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 3, result.Members)
	assert.Equal(t, 3, result.Tiers)
	assert.Equal(t, []string{"t1", "t2"}, tierIDs(result.TopTiers))
	assert.True(t, result.Written)

	assert.Equal(t, expectedSnapshot, readFile(t, f.conf.OutputFile))

	require.Len(t, f.auth, 3)
	for _, v := range f.auth {
		assert.Equal(t, "Bearer secret-token", v)
	}
}

func TestSyncIdempotent(t *testing.T) {
	f := newSyncFixture(t)
	f.respondIdentity(200, identityWithCampaign)
	f.respondMembers()

	_, err := f.syncer.Run()
	require.NoError(t, err)
	first := readFile(t, f.conf.OutputFile)

	_, err = f.syncer.Run()
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, f.conf.OutputFile))
}

func TestSyncNoCampaign(t *testing.T) {
	f := newSyncFixture(t)
	f.respondIdentity(200, `{"data": {"id": "u1", "type": "user"}}`)
	writeExisting(t, f.conf.OutputFile)

	result, err := f.syncer.Run()
	require.NoError(t, err)
	assert.True(t, result.NoCampaign)
	assert.False(t, result.Written)

	assert.Equal(t, "previous", readFile(t, f.conf.OutputFile))
}

func TestSyncUnauthorized(t *testing.T) {
	f := newSyncFixture(t)
	f.respondIdentity(401, `{"errors": [{"status": "401", "title": "Unauthorized"}]}`)
	writeExisting(t, f.conf.OutputFile)

	result, err := f.syncer.Run()
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, patreonapi.IsUnauthorized(err))

	assert.Equal(t, "previous", readFile(t, f.conf.OutputFile))
}

func TestSyncFailedPageLeavesSnapshot(t *testing.T) {
	f := newSyncFixture(t)
	f.respondIdentity(200, identityWithCampaign)
	f.respond("/campaigns/c42/members", func(req *http.Request) (int, string) {
		if req.URL.Query().Get("page[cursor]") == "p2" {
			return 503, "unavailable"
		}
		return 200, membersFirstPage
	})
	writeExisting(t, f.conf.OutputFile)

	_, err := f.syncer.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	assert.Equal(t, "previous", readFile(t, f.conf.OutputFile))
}

func TestSyncZeroActivePatrons(t *testing.T) {
	f := newSyncFixture(t)
	f.respondIdentity(200, identityWithCampaign)
	f.respond("/campaigns/c42/members", func(*http.Request) (int, string) {
		return 200, `{"data": [], "included": [{"id": "t1", "type": "tier", "attributes": {"title": "Legend", "amount_cents": 5000}}]}`
	})
	writeExisting(t, f.conf.OutputFile)

	result, err := f.syncer.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Members)
	assert.True(t, result.Written)

	assert.Equal(t, "[]", readFile(t, f.conf.OutputFile))
}

func TestSyncDryRun(t *testing.T) {
	f := newSyncFixture(t)
	f.conf.DryRun = true
	f.respondIdentity(200, identityWithCampaign)
	f.respondMembers()

	result, err := f.syncer.Run()
	require.NoError(t, err)
	assert.False(t, result.Written)
	assert.Len(t, result.Subscribers, 2)

	_, err = ioutil.ReadFile(f.conf.OutputFile)
	assert.Error(t, err)
}
