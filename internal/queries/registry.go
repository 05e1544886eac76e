// Package queries names the GovTrack façade operations so the CLI and the
// HTTP server can dispatch them the same way.
package queries

import (
	"context"
	"sort"

	"github.com/briangreenhill/govtrack/govtrack"
)

// Result is anything a query returns; it renders as markdown and encodes as JSON.
type Result interface {
	Markdown() string
}

// Query defines the minimal interface every named query implements
type Query interface {
	// Name returns the query name (e.g., "senators", "bills")
	Name() string

	// Description is a one-line help text
	Description() string

	// Run executes the query with its single string argument
	Run(ctx context.Context, arg string) (Result, error)
}

// Registry manages available queries
type Registry struct {
	queries map[string]Query
}

// NewRegistry creates a new, empty query registry
func NewRegistry() *Registry {
	return &Registry{
		queries: make(map[string]Query),
	}
}

// Register adds a query to the registry
func (r *Registry) Register(q Query) {
	r.queries[q.Name()] = q
}

// Get retrieves a query by name
func (r *Registry) Get(name string) (Query, bool) {
	q, exists := r.queries[name]
	return q, exists
}

// List returns all registered query names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.queries))
	for name := range r.queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type funcQuery struct {
	name, description string
	run               func(ctx context.Context, arg string) (Result, error)
}

func (q funcQuery) Name() string        { return q.name }
func (q funcQuery) Description() string { return q.description }
func (q funcQuery) Run(ctx context.Context, arg string) (Result, error) {
	return q.run(ctx, arg)
}

// ForClient returns a registry holding the three GovTrack queries bound to c
func ForClient(c *govtrack.Client) *Registry {
	r := NewRegistry()
	r.Register(funcQuery{
		name:        "senators",
		description: "Current senators of a party",
		run: func(ctx context.Context, party string) (Result, error) {
			ls, err := c.GetSenators(ctx, party)
			return govtrack.Legislators(ls), err
		},
	})
	r.Register(funcQuery{
		name:        "representatives",
		description: "Current representatives of a party",
		run: func(ctx context.Context, party string) (Result, error) {
			ls, err := c.GetRepresentatives(ctx, party)
			return govtrack.Legislators(ls), err
		},
	})
	r.Register(funcQuery{
		name:        "bills",
		description: "Bills matching a keyword search",
		run: func(ctx context.Context, text string) (Result, error) {
			bs, err := c.GetBillsByKeyword(ctx, text)
			return govtrack.Bills(bs), err
		},
	})
	return r
}
