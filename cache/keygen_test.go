package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const roleEndpoint = "https://www.govtrack.us/api/v2/role"

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]string
		expected string
	}{
		{
			name:     "senators",
			params:   map[string]string{"party": "Democrat", "current": "True", "role_type": "senator"},
			expected: roleEndpoint + "?role_type=senator&current=True&party=Democrat",
		},
		{
			name:     "representatives",
			params:   map[string]string{"role_type": "representative", "current": "True", "party": "Republican"},
			expected: roleEndpoint + "?role_type=representative&current=True&party=Republican",
		},
		{
			name:     "values are escaped",
			params:   map[string]string{"q": "clean air & water"},
			expected: roleEndpoint + "?q=clean+air+%26+water",
		},
		{
			name:     "equal values order by name",
			params:   map[string]string{"b": "x", "a": "x"},
			expected: roleEndpoint + "?a=x&b=x",
		},
		{
			name:     "no params",
			params:   map[string]string{},
			expected: roleEndpoint + "?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KeyFor(roleEndpoint, tt.params))
		})
	}
}

func TestKeyForIsStable(t *testing.T) {
	params := map[string]string{
		"role_type": "senator",
		"current":   "True",
		"party":     "Democrat",
		"state":     "NY",
		"district":  "NY",
	}
	first := KeyFor(roleEndpoint, params)

	// Map iteration order varies between runs; rebuild the map in a different
	// insertion order a few times.
	for i := 0; i < 20; i++ {
		shuffled := make(map[string]string, len(params))
		for _, k := range []string{"district", "state", "party", "current", "role_type"} {
			shuffled[k] = params[k]
		}
		assert.Equal(t, first, KeyFor(roleEndpoint, shuffled))
	}
}
