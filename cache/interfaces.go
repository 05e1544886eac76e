// Package cache provides the record/replay store for GovTrack API responses.
// Responses are recorded per request signature while online and replayed in
// order while offline.
package cache

import "fmt"

// Policy decides what a lookup returns once an entry's recorded responses
// have all been consumed.
type Policy string

const (
	// PolicyRepeat keeps returning the last recorded response.
	PolicyRepeat Policy = "repeat"
	// PolicyEmpty returns the empty string once the sequence is exhausted.
	PolicyEmpty Policy = "empty"
)

// ParsePolicy validates a policy name. The empty string selects PolicyRepeat.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyRepeat:
		return PolicyRepeat, nil
	case PolicyEmpty:
		return PolicyEmpty, nil
	default:
		return "", fmt.Errorf("unknown replay policy %q (want %q or %q)", s, PolicyRepeat, PolicyEmpty)
	}
}

// Recorder collects live responses while recording is active
type Recorder interface {
	// Append stores raw under signature; it is a no-op when not recording
	Append(signature, raw string)
	Recording() bool
}

// Replayer serves recorded responses back in order
type Replayer interface {
	// Lookup returns the next recorded response for signature, or "" when
	// there is nothing to replay
	Lookup(signature string) string
}

// Persister moves the whole cache state to and from disk
type Persister interface {
	Save(path string) error
	Load(path string) error
}

// ReplayCache combines all cache operations used by the client
type ReplayCache interface {
	Recorder
	Replayer
	Persister
	BeginRecording(policy Policy)
	EndRecording()
	Remove(signature string)
}

var _ ReplayCache = (*Store)(nil)
