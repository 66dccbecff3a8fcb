package api

import (
	"github.com/maksimkurb/ipnorm/src/internal/collector"
	"github.com/maksimkurb/ipnorm/src/internal/endpoint"
)

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// EndpointInfo describes one normalized endpoint.
type EndpointInfo struct {
	IP        string `json:"ip"`
	Port      uint16 `json:"port"`
	Tag       string `json:"tag,omitempty"`
	Canonical string `json:"canonical"`
}

// Rejection describes a skipped input line.
type Rejection struct {
	Line   int             `json:"line"`
	Raw    string          `json:"raw"`
	Reason endpoint.Reason `json:"reason"`
}

// NormalizeResponse returns the result of POST /api/v1/normalize.
type NormalizeResponse struct {
	Endpoints []EndpointInfo  `json:"endpoints"`
	Stats     collector.Stats `json:"stats"`
	// Excluded counts endpoints removed by the exclude filter. It is not part of Stats.
	Excluded   int         `json:"excluded"`
	Rejections []Rejection `json:"rejections"`
	// RejectionsTruncated is set when more lines were rejected than listed.
	RejectionsTruncated bool `json:"rejections_truncated,omitempty"`
}

// ParseRequest contains a single line to parse.
type ParseRequest struct {
	Line string `json:"line"`
}

// ParseResponse explains how a line was parsed.
type ParseResponse struct {
	OK       bool            `json:"ok"`
	Endpoint *EndpointInfo   `json:"endpoint,omitempty"`
	Format   string          `json:"format,omitempty"`
	Reason   endpoint.Reason `json:"reason"`
}

// HealthCheckResponse returns health check results.
type HealthCheckResponse struct {
	Healthy bool                   `json:"healthy"`
	Version VersionInfo            `json:"version"`
	Formats []string               `json:"formats"`
	Checks  map[string]CheckResult `json:"checks"`
}

// VersionInfo contains build version information.
type VersionInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// CheckResult contains the result of a single health check.
type CheckResult struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

func toEndpointInfo(ep endpoint.Endpoint) EndpointInfo {
	return EndpointInfo{
		IP:        ep.Addr().String(),
		Port:      ep.Port(),
		Tag:       ep.Tag,
		Canonical: ep.String(),
	}
}
