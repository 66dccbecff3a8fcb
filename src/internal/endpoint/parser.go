package endpoint

import (
	"strconv"
	"strings"
	"unicode"
)

// Format names reported in Outcome.Format.
const (
	FormatTagged     = "tagged"
	FormatColon      = "colon"
	FormatWhitespace = "whitespace"
	FormatDelimited  = "delimited"
)

// rule recognizes one line encoding. match decides whether the rule applies to
// the line; split extracts the address and port candidates, returning false when
// the line has the wrong number of parts.
type rule struct {
	name  string
	match func(line string) bool
	split func(line string) (addr, port, tag string, ok bool)
}

// rules are tried in order and the first matching one wins. Reordering changes
// the result for lines containing several delimiters, e.g. "1.2.3.4:80,x".
var rules = []rule{
	{
		name: FormatTagged,
		match: func(line string) bool {
			return strings.Contains(line, ":") && strings.Contains(line, "#")
		},
		split: func(line string) (string, string, string, bool) {
			head, tag, _ := strings.Cut(line, "#")
			parts := strings.Split(strings.TrimSpace(head), ":")
			if len(parts) != 2 {
				return "", "", "", false
			}
			return parts[0], parts[1], strings.TrimSpace(tag), true
		},
	},
	{
		name: FormatColon,
		match: func(line string) bool {
			return strings.Contains(line, ":") && !strings.Contains(line, "#")
		},
		split: func(line string) (string, string, string, bool) {
			parts := strings.Split(line, ":")
			if len(parts) != 2 {
				return "", "", "", false
			}
			return parts[0], parts[1], "", true
		},
	},
	{
		name: FormatWhitespace,
		match: func(line string) bool {
			return strings.IndexFunc(line, unicode.IsSpace) >= 0 && !strings.Contains(line, ":")
		},
		split: func(line string) (string, string, string, bool) {
			parts := strings.Fields(line)
			if len(parts) < 2 {
				return "", "", "", false
			}
			return parts[0], parts[1], "", true
		},
	},
	{
		name: FormatDelimited,
		match: func(line string) bool {
			return strings.Contains(line, ",")
		},
		split: func(line string) (string, string, string, bool) {
			parts := strings.Split(line, ",")
			if len(parts) < 2 {
				return "", "", "", false
			}
			return unquote(parts[0]), unquote(parts[1]), "", true
		},
	},
}

// Formats returns the rule names in the order they are tried.
func Formats() []string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.name)
	}
	return names
}

// IsComment reports whether a trimmed line is blank or a comment.
func IsComment(line string) bool {
	return line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}

// Parse classifies a raw line and extracts an endpoint from it. It never fails:
// malformed input is reported through Outcome.Reason.
func Parse(line string) Outcome {
	line = strings.TrimSpace(line)
	if IsComment(line) {
		return reject(InvalidFormat, "")
	}

	for _, r := range rules {
		if !r.match(line) {
			continue
		}

		addr, port, tag, ok := r.split(line)
		if !ok {
			return reject(InvalidFormat, r.name)
		}

		octets, ok := parseIPv4(strings.TrimSpace(addr))
		if !ok {
			return reject(InvalidIP, r.name)
		}

		portNum, ok := parsePort(strings.TrimSpace(port))
		if !ok {
			return reject(InvalidPort, r.name)
		}

		ep := New(octets, portNum)
		ep.Tag = tag
		return Outcome{Endpoint: ep, Format: r.name}
	}

	return reject(InvalidFormat, "")
}

// MustParse parses a line and panics if it is not a valid endpoint.
func MustParse(line string) Endpoint {
	o := Parse(line)
	if !o.OK() {
		panic("endpoint: cannot parse " + strconv.Quote(line) + ": " + o.Reason.String())
	}
	return o.Endpoint
}

// IsCanonical reports whether the line is already exactly "{ip} {port}".
func IsCanonical(line string) bool {
	o := Parse(line)
	return o.OK() && o.Endpoint.String() == line
}

func unquote(s string) string {
	return strings.Trim(s, " \t\r\n'\"")
}

func parseIPv4(s string) ([4]byte, bool) {
	var octets [4]byte

	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return octets, false
	}

	for i, part := range parts {
		n, ok := parseDecimal(part, 255)
		if !ok {
			return octets, false
		}
		octets[i] = byte(n)
	}

	return octets, true
}

func parsePort(s string) (uint16, bool) {
	n, ok := parseDecimal(s, 65535)
	if !ok || n < 1 {
		return 0, false
	}
	return uint16(n), true
}

// parseDecimal accepts only ASCII digits; signs and surrounding garbage are rejected.
func parseDecimal(s string, max uint64) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n > max {
		return 0, false
	}
	return n, true
}
