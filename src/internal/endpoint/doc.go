// Package endpoint parses free-form text lines into IPv4 endpoints.
//
// Four encodings are recognized, tried in this order:
//
//	103.20.199.122:443#JP Tokyo   tagged (text after '#' kept as Tag)
//	103.20.199.122:443            colon
//	103.20.199.122 443            whitespace
//	"103.20.199.122","443"        delimited
//
// Blank lines and lines starting with '#' or '//' are rejected as InvalidFormat.
// A valid endpoint renders in canonical form "103.20.199.122 443", which is the
// identity used for deduplication.
package endpoint
