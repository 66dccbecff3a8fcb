// Package api provides the REST API server for ipnorm.
//
// The API exposes the normalizer over HTTP:
//   - POST /api/v1/normalize: normalize a text/plain body, one entry per line
//   - POST /api/v1/parse: parse a single line and explain the outcome
//   - GET /api/v1/health: liveness and parser self-check
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "invalid_request",
//	    "message": "Human-readable error message",
//	    "details": { /* optional context */ }
//	  }
//	}
//
// Requests are accepted only from loopback and private networks.
package api
