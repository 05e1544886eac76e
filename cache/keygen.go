package cache

import (
	"net/url"
	"sort"
	"strings"
)

type param struct {
	name, value string
}

// KeyFor builds the request signature for endpoint and params. Parameters are
// ordered by value, descending, which is the ordering existing recordings were
// keyed with; equal values fall back to name order. The result doubles as the
// live request URL.
func KeyFor(endpoint string, params map[string]string) string {
	parts := make([]param, 0, len(params))
	for k, v := range params {
		parts = append(parts, param{name: k, value: v})
	}
	sort.Slice(parts, func(i, j int) bool {
		if parts[i].value != parts[j].value {
			return parts[i].value > parts[j].value
		}
		return parts[i].name < parts[j].name
	})

	encoded := make([]string, len(parts))
	for i, p := range parts {
		encoded[i] = p.name + "=" + url.QueryEscape(p.value)
	}
	return endpoint + "?" + strings.Join(encoded, "&")
}
