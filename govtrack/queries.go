package govtrack

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/briangreenhill/govtrack/cache"
)

const (
	resourceRole = "role"
	resourceBill = "bill"
)

// GetSenators returns the current senators of party (e.g. "Democrat").
func (c *Client) GetSenators(ctx context.Context, party string) ([]Legislator, error) {
	return c.legislators(ctx, "senator", party)
}

// GetRepresentatives returns the current representatives of party.
func (c *Client) GetRepresentatives(ctx context.Context, party string) ([]Legislator, error) {
	return c.legislators(ctx, "representative", party)
}

// GetBillsByKeyword returns the bills matching a free-text search.
func (c *Client) GetBillsByKeyword(ctx context.Context, text string) ([]Bill, error) {
	if err := c.validate(text); err != nil {
		return nil, err
	}
	objects, err := c.query(ctx, resourceBill, map[string]string{"q": text})
	if err != nil {
		return nil, err
	}

	bills := make([]Bill, 0, len(objects))
	for _, o := range objects {
		b, err := MapBill(o)
		if err != nil {
			return nil, c.fail(err)
		}
		bills = append(bills, b)
	}
	return bills, nil
}

func (c *Client) legislators(ctx context.Context, roleType, party string) ([]Legislator, error) {
	if err := c.validate(party); err != nil {
		return nil, err
	}
	params := map[string]string{
		"role_type": roleType,
		"current":   "True",
		"party":     party,
	}
	objects, err := c.query(ctx, resourceRole, params)
	if err != nil {
		return nil, err
	}

	out := make([]Legislator, 0, len(objects))
	for _, o := range objects {
		l, err := MapLegislator(o)
		if err != nil {
			return nil, c.fail(err)
		}
		out = append(out, l)
	}
	return out, nil
}

// validate rejects text that cannot be sent as a query value. Empty text is
// passed through as an empty parameter.
func (c *Client) validate(q string) error {
	if !utf8.ValidString(q) {
		return c.fail(newError(KindInvalidQuery, nil, "please enter a valid query"))
	}
	return nil
}

// query fetches resource and returns its objects list.
func (c *Client) query(ctx context.Context, resource string, params map[string]string) ([]json.RawMessage, error) {
	signature := cache.KeyFor(c.baseURL+resource, params)

	raw, err := c.fetch(ctx, resource, signature, signature)
	if err != nil {
		return nil, c.fail(err)
	}

	body := Normalize(raw)
	if body == "" {
		return nil, c.fail(newError(KindMalformedResponse, nil, "there were no results"))
	}

	var r response
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, c.fail(newError(KindMalformedResponse, err, "response is not valid JSON"))
	}
	if r.Objects == nil {
		return nil, c.fail(newError(KindMalformedResponse, nil, "response has no objects list"))
	}
	return r.Objects, nil
}

// Normalize strips the "// " comment markers GovTrack emits and collapses
// every run of whitespace to a single space.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(raw, "// ", "")), " ")
}

func (c *Client) fail(err error) error {
	c.metrics.RecordError(KindOf(err))
	return err
}
