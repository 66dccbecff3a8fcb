package endpoint

import (
	"fmt"
	"net/netip"
	"strconv"
)

// Endpoint is a validated IPv4 address and port pair.
type Endpoint struct {
	AddrPort netip.AddrPort
	// Tag is the free-form description found after '#' in tagged lines. It is
	// never part of the endpoint identity.
	Tag string
}

// New builds an Endpoint from four octets and a port.
func New(octets [4]byte, port uint16) Endpoint {
	return Endpoint{AddrPort: netip.AddrPortFrom(netip.AddrFrom4(octets), port)}
}

// Addr returns the IPv4 address.
func (e Endpoint) Addr() netip.Addr {
	return e.AddrPort.Addr()
}

// Port returns the port number.
func (e Endpoint) Port() uint16 {
	return e.AddrPort.Port()
}

// String returns the canonical "{ip} {port}" form used for deduplication.
// Leading zeros are dropped from the octets as well as the port, so
// "01.2.3.4:080" and "1.2.3.4:80" render the same.
func (e Endpoint) String() string {
	return e.Addr().String() + " " + strconv.FormatUint(uint64(e.Port()), 10)
}

// HostPort returns "{ip}:{port}".
func (e Endpoint) HostPort() string {
	return e.AddrPort.String()
}

// Compare orders endpoints by address octets numerically, then by port.
func (e Endpoint) Compare(other Endpoint) int {
	// Equivalent to netip.AddrPort.Compare (Go 1.22+).
	if c := e.Addr().Compare(other.Addr()); c != 0 {
		return c
	}
	switch {
	case e.Port() < other.Port():
		return -1
	case e.Port() > other.Port():
		return 1
	}
	return 0
}

// Reason classifies why a line was rejected.
type Reason int

const (
	// None means the line produced a valid endpoint.
	None Reason = iota
	// InvalidFormat means no supported encoding matched the line.
	InvalidFormat
	// InvalidIP means the address is not four octets in [0, 255].
	InvalidIP
	// InvalidPort means the port is not an integer in [1, 65535].
	InvalidPort
)

func (r Reason) String() string {
	switch r {
	case None:
		return "ok"
	case InvalidFormat:
		return "invalid_format"
	case InvalidIP:
		return "invalid_ip"
	case InvalidPort:
		return "invalid_port"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// MarshalText renders the reason for JSON responses and map keys.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (r *Reason) UnmarshalText(text []byte) error {
	for _, candidate := range []Reason{None, InvalidFormat, InvalidIP, InvalidPort} {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown reason %q", text)
}

// Outcome is the result of parsing one line: either an endpoint or a rejection reason.
type Outcome struct {
	Endpoint Endpoint
	Reason   Reason
	// Format is the name of the rule that matched, empty when none did.
	Format string
}

// OK reports whether the outcome carries a valid endpoint.
func (o Outcome) OK() bool {
	return o.Reason == None
}

func reject(reason Reason, format string) Outcome {
	return Outcome{Reason: reason, Format: format}
}
