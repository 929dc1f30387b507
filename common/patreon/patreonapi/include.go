package patreonapi

import (
	"reflect"

	"emperror.dev/errors"
	jsoniter "github.com/json-iterator/go"
)

const (
	TypeTier     = "tier"
	TypeCampaign = "campaign"
	TypeUser     = "user"
	TypeMember   = "member"
)

var TypeMap = map[string]interface{}{
	TypeUser:     UserAttributes{},
	TypeTier:     TierAttributes{},
	TypeCampaign: CampaignAttributes{},
}

// Include is a side-loaded resource from the "included" section of a document.
type Include struct {
	Type string `json:"type"`
	ID   string `json:"id"`

	Attributes jsoniter.RawMessage `json:"attributes"`

	// Decoded holds a pointer to the attribute struct registered in TypeMap
	// for Type. It stays nil for unknown types and for resources that came
	// without attributes.
	Decoded interface{} `json:"-"`
}

func DecodeIncludes(includes []*Include) error {
	for _, v := range includes {
		if v == nil {
			continue
		}

		dec, err := DecodeInclude(v)
		if err != nil {
			return errors.WithMessage(err, "decode "+v.Type+" "+v.ID)
		}

		v.Decoded = dec
	}

	return nil
}

// DecodeInclude decodes the attributes of include into its registered type.
// Unknown types are not an error, the API may side-load more than asked for.
func DecodeInclude(include *Include) (interface{}, error) {
	t, ok := TypeMap[include.Type]
	if !ok {
		return nil, nil
	}

	if len(include.Attributes) == 0 || string(include.Attributes) == "null" {
		return nil, nil
	}

	typ := reflect.TypeOf(t)

	dst := reflect.New(typ).Interface()
	err := json.Unmarshal(include.Attributes, dst)
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// Tier returns the decoded tier attributes, or nil if include is not a tier
// or had no attributes.
func (include *Include) Tier() *TierAttributes {
	if include.Type != TypeTier {
		return nil
	}
	t, _ := include.Decoded.(*TierAttributes)
	return t
}

type Relationships struct {
	Campaign RelationShip      `json:"campaign"`
	User     RelationShip      `json:"user"`
	Tiers    RelationShipSlice `json:"currently_entitled_tiers"`
}

type RelationShip struct {
	Data *RelationshipData `json:"data"`
}

type RelationShipSlice struct {
	Data []*RelationshipData `json:"data"`
}

type RelationshipData struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// IDs returns the ids of the related resources in the order the API listed them.
func (r RelationShipSlice) IDs() []string {
	ids := make([]string, 0, len(r.Data))
	for _, v := range r.Data {
		if v == nil || v.ID == "" {
			continue
		}
		ids = append(ids, v.ID)
	}
	return ids
}
