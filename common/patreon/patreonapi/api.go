package patreonapi

import (
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"emperror.dev/errors"
	"github.com/dghubble/sling"
	jsoniter "github.com/json-iterator/go"
)

const APIBase = "https://www.patreon.com/api/oauth2/v2"

const DefaultUserAgent = "GitHub-Action-Daily-Sync"

// DefaultPageSize is the largest page[count] the members endpoint accepts.
const DefaultPageSize = 100

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the Patreon v2 API. Authentication is the job of the
// underlying http.Client, see patreon.NewHTTPClient.
type Client struct {
	httpClient *http.Client
	base       *sling.Sling
}

func NewClient(httpClient *http.Client, apiBase, userAgent string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if apiBase == "" {
		apiBase = APIBase
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	base := sling.New().
		Client(httpClient).
		Base(strings.TrimSuffix(apiBase, "/")+"/").
		Set("User-Agent", userAgent).
		Set("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		base:       base,
	}
}

// Get performs the request built by s and decodes a successful body into dataDst.
func (c *Client) Get(s *sling.Sling, dataDst interface{}) error {
	req, err := s.Request()
	if err != nil {
		return errors.WithMessage(err, "patreonapi: build request")
	}

	return c.Do(req, dataDst)
}

// Do performs req and decodes a successful body into dataDst.
func (c *Client) Do(req *http.Request, dataDst interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithMessage(err, "patreonapi: "+req.Method+" "+req.URL.Path)
	}
	defer resp.Body.Close()

	fullbody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.WithMessage(err, "patreonapi: read body")
	}

	if resp.StatusCode >= 300 || resp.StatusCode < 200 {
		return newStatusError(req, resp, fullbody)
	}

	if dataDst != nil {
		err = json.Unmarshal(fullbody, dataDst)
		if err != nil {
			return errors.WithMessage(err, "patreonapi: decode "+req.URL.Path)
		}
	}

	return nil
}

type identityQuery struct {
	Include    string `url:"include,omitempty"`
	UserFields string `url:"fields[user],omitempty"`
}

// FetchIdentity fetches the authenticated user with its campaign side-loaded.
func (c *Client) FetchIdentity() (r *IdentityResponse, err error) {
	q := &identityQuery{
		Include:    "campaign",
		UserFields: "full_name",
	}

	r = new(IdentityResponse)
	err = c.Get(c.base.New().Get("identity").QueryStruct(q), r)
	if err != nil {
		return nil, err
	}

	err = DecodeIncludes(r.Included)
	return r, err
}

type membersQuery struct {
	Include      string `url:"include,omitempty"`
	MemberFields string `url:"fields[member],omitempty"`
	TierFields   string `url:"fields[tier],omitempty"`
	PageCount    int    `url:"page[count],omitempty"`
}

// FetchMembers fetches the first page of a campaign's members, with their
// currently entitled tiers side-loaded.
func (c *Client) FetchMembers(campaign string, count int) (r *MembersResponse, err error) {
	if count <= 0 {
		count = DefaultPageSize
	}

	q := &membersQuery{
		Include:      "currently_entitled_tiers",
		MemberFields: "full_name,patron_status",
		TierFields:   "title,amount_cents",
		PageCount:    count,
	}

	path := "campaigns/" + url.PathEscape(campaign) + "/members"
	return c.fetchMembers(c.base.New().Get(path).QueryStruct(q))
}

// FetchMembersPage follows a links.next url from a previous page. The link
// already carries the include and field selection and the cursor, its query
// is sent exactly as the server wrote it.
func (c *Client) FetchMembersPage(next string) (r *MembersResponse, err error) {
	if next == "" {
		return nil, errors.New("patreonapi: empty next page link")
	}

	link, err := url.Parse(next)
	if err != nil {
		return nil, errors.WithMessage(err, "patreonapi: parse next page link")
	}

	// sling re-encodes the query of the url it is given, so the headers come
	// from it but the url is replaced with the link as is
	req, err := c.base.New().Get("").Request()
	if err != nil {
		return nil, errors.WithMessage(err, "patreonapi: build request")
	}
	req.URL = req.URL.ResolveReference(link)
	req.Host = req.URL.Host

	r = new(MembersResponse)
	err = c.Do(req, r)
	if err != nil {
		return nil, err
	}

	err = DecodeIncludes(r.Included)
	return r, err
}

func (c *Client) fetchMembers(s *sling.Sling) (r *MembersResponse, err error) {
	r = new(MembersResponse)
	err = c.Get(s, r)
	if err != nil {
		return nil, err
	}

	err = DecodeIncludes(r.Included)
	return r, err
}
