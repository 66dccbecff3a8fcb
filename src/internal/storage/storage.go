// Package storage defines persistence of normalized endpoints.
package storage

import (
	"context"
	"time"

	"github.com/maksimkurb/ipnorm/src/internal/collector"
)

// EndpointRecord holds the endpoint fields we persist.
type EndpointRecord struct {
	IP       string
	Port     uint16
	Tag      string
	LastSeen time.Time
}

// Repository defines persistence operations for endpoints.
type Repository interface {
	SaveEndpoints(ctx context.Context, records []EndpointRecord) error
}

// RecordsFromResult converts a finalized result into records seen at the given time.
func RecordsFromResult(result *collector.Result, seen time.Time) []EndpointRecord {
	records := make([]EndpointRecord, len(result.Endpoints))
	for i, ep := range result.Endpoints {
		records[i] = EndpointRecord{
			IP:       ep.Addr().String(),
			Port:     ep.Port(),
			Tag:      ep.Tag,
			LastSeen: seen.UTC(),
		}
	}
	return records
}
