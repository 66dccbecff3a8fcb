package filter

import (
	"net/netip"
	"testing"
)

func TestNew_Contains(t *testing.T) {
	f, err := New([]string{"10.0.0.0/8", "192.168.1.1", "172.16.0.0/12"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		addr string
		want bool
	}{
		{"10.1.2.3", true},
		{"192.168.1.1", true},
		{"192.168.1.2", false},
		{"172.31.255.255", true},
		{"172.32.0.0", false},
		{"8.8.8.8", false},
	}

	for _, tt := range tests {
		if got := f.Contains(netip.MustParseAddr(tt.addr)); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestNew_MergesAdjacent(t *testing.T) {
	f, err := New([]string{"10.0.0.0/25", "10.0.0.128/25", "10.0.0.5"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (%v)", f.Len(), f.Prefixes())
	}
	if got := f.Prefixes()[0].String(); got != "10.0.0.0/24" {
		t.Errorf("Prefixes()[0] = %s, want 10.0.0.0/24", got)
	}
}

func TestNew_Empty(t *testing.T) {
	f, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if f != nil {
		t.Fatalf("expected nil filter")
	}
	if f.Contains(netip.MustParseAddr("1.2.3.4")) || f.Len() != 0 || f.Prefixes() != nil {
		t.Errorf("nil filter must match nothing")
	}
}

func TestNew_Invalid(t *testing.T) {
	for _, bad := range []string{"nope", "fe80::/10", "1.2.3.4/33"} {
		if _, err := New([]string{bad}); err == nil {
			t.Errorf("New(%q) expected error", bad)
		}
	}
}
