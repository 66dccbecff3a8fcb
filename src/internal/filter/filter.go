// Package filter builds address sets used to drop endpoints from the final list.
package filter

import (
	"fmt"
	"net/netip"

	"go4.org/netipx"

	"github.com/maksimkurb/ipnorm/src/internal/config"
)

// Filter matches IPv4 addresses against a set of excluded networks.
type Filter struct {
	set      *netipx.IPSet
	prefixes int
}

// New builds a filter from addresses and CIDRs. An empty list yields a nil
// filter, which matches nothing.
func New(networks []string) (*Filter, error) {
	if len(networks) == 0 {
		return nil, nil
	}

	var builder netipx.IPSetBuilder
	for _, network := range networks {
		prefix, err := config.ParseNetwork(network)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude network %q: %w", network, err)
		}
		builder.AddPrefix(prefix)
	}

	set, err := builder.IPSet()
	if err != nil {
		return nil, fmt.Errorf("failed to build exclude set: %w", err)
	}

	return &Filter{set: set, prefixes: len(set.Prefixes())}, nil
}

// Contains reports whether addr is excluded.
func (f *Filter) Contains(addr netip.Addr) bool {
	if f == nil {
		return false
	}
	return f.set.Contains(addr)
}

// Len returns the number of merged prefixes in the set.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return f.prefixes
}

// Prefixes returns the merged prefixes, e.g. for logging.
func (f *Filter) Prefixes() []netip.Prefix {
	if f == nil {
		return nil
	}
	return f.set.Prefixes()
}
