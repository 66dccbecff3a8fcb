// Package collector deduplicates parsed endpoints and produces the sorted result.
//
// A Collector is owned by a single pipeline run. It accepts outcomes until
// Finalize is called; after that it is frozen and any further call panics.
package collector

import (
	"net/netip"
	"slices"

	"github.com/maksimkurb/ipnorm/src/internal/endpoint"
)

// ErrFinalized is the panic message used when a finalized Collector is reused.
const ErrFinalized = "collector: already finalized"

// Stats holds the counters of one run.
type Stats struct {
	// Total is the number of outcomes fed to the collector.
	Total int `json:"total"`
	// Processed counts valid endpoints, duplicates included.
	Processed int `json:"processed"`
	// Skipped counts rejected lines.
	Skipped int `json:"skipped"`
	// Unique is the number of distinct endpoints.
	Unique int `json:"unique"`
	// Rejected breaks Skipped down by reason.
	Rejected map[endpoint.Reason]int `json:"rejected,omitempty"`
}

// Collector accumulates outcomes keyed by canonical endpoint string.
type Collector struct {
	seen      map[string]endpoint.Endpoint
	stats     Stats
	finalized bool
}

// New creates an empty collector.
func New() *Collector {
	return &Collector{
		seen:  make(map[string]endpoint.Endpoint),
		stats: Stats{Rejected: make(map[endpoint.Reason]int)},
	}
}

// Add records one parse outcome. The first occurrence of an endpoint wins, so
// its tag is the one kept.
func (c *Collector) Add(o endpoint.Outcome) {
	if c.finalized {
		panic(ErrFinalized)
	}

	c.stats.Total++
	if !o.OK() {
		c.stats.Skipped++
		c.stats.Rejected[o.Reason]++
		return
	}

	c.stats.Processed++
	key := o.Endpoint.String()
	if _, exists := c.seen[key]; !exists {
		c.seen[key] = o.Endpoint
	}
}

// AddLine parses the line and records the outcome, returning it to the caller.
func (c *Collector) AddLine(line string) endpoint.Outcome {
	o := endpoint.Parse(line)
	c.Add(o)
	return o
}

// Stats returns a snapshot of the running counters.
func (c *Collector) Stats() Stats {
	s := c.stats
	s.Unique = len(c.seen)
	s.Rejected = cloneRejected(c.stats.Rejected)
	return s
}

// Finalized reports whether Finalize was called.
func (c *Collector) Finalized() bool {
	return c.finalized
}

// Finalize freezes the collector and returns the sorted result.
func (c *Collector) Finalize() *Result {
	if c.finalized {
		panic(ErrFinalized)
	}
	c.finalized = true

	endpoints := make([]endpoint.Endpoint, 0, len(c.seen))
	for _, ep := range c.seen {
		endpoints = append(endpoints, ep)
	}
	slices.SortFunc(endpoints, func(a, b endpoint.Endpoint) int {
		return a.Compare(b)
	})

	return &Result{Endpoints: endpoints, Stats: c.Stats()}
}

// Result is the frozen output of a run.
type Result struct {
	Endpoints []endpoint.Endpoint
	Stats     Stats
}

// Lines returns the canonical strings in sorted order.
func (r *Result) Lines() []string {
	lines := make([]string, len(r.Endpoints))
	for i, ep := range r.Endpoints {
		lines[i] = ep.String()
	}
	return lines
}

// AddrMatcher reports whether an address belongs to some set.
type AddrMatcher interface {
	Contains(addr netip.Addr) bool
}

// Exclude returns a copy of the result without endpoints whose address is
// matched, and the number of endpoints removed. Stats are carried over as is.
func (r *Result) Exclude(m AddrMatcher) (*Result, int) {
	if m == nil {
		return r, 0
	}

	kept := make([]endpoint.Endpoint, 0, len(r.Endpoints))
	for _, ep := range r.Endpoints {
		if !m.Contains(ep.Addr()) {
			kept = append(kept, ep)
		}
	}

	stats := r.Stats
	stats.Rejected = cloneRejected(r.Stats.Rejected)
	return &Result{Endpoints: kept, Stats: stats}, len(r.Endpoints) - len(kept)
}

func cloneRejected(m map[endpoint.Reason]int) map[endpoint.Reason]int {
	out := make(map[endpoint.Reason]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
