package collector

import (
	"net/netip"
	"slices"
	"testing"

	"github.com/maksimkurb/ipnorm/src/internal/endpoint"
)

func collect(lines ...string) *Result {
	c := New()
	for _, line := range lines {
		c.AddLine(line)
	}
	return c.Finalize()
}

func TestCollector_EndToEnd(t *testing.T) {
	result := collect(
		"103.20.199.122:443#🇯🇵日本24",
		"103.20.199.122 443",
		"8.8.8.8,53",
		"bad line",
	)

	want := []string{"8.8.8.8 53", "103.20.199.122 443"}
	if got := result.Lines(); !slices.Equal(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}

	s := result.Stats
	if s.Total != 4 || s.Processed != 3 || s.Skipped != 1 || s.Unique != 2 {
		t.Errorf("Stats = %+v, want total:4 processed:3 skipped:1 unique:2", s)
	}
	if s.Rejected[endpoint.InvalidIP] != 1 {
		t.Errorf("Rejected = %v, want one invalid_ip", s.Rejected)
	}
}

func TestCollector_DedupAcrossEncodings(t *testing.T) {
	result := collect("1.2.3.4:80", "1.2.3.4 80", `"1.2.3.4","080"`, "1.2.3.4:80#dup")

	if got := result.Lines(); !slices.Equal(got, []string{"1.2.3.4 80"}) {
		t.Errorf("Lines() = %v, want single entry", got)
	}
	if result.Stats.Processed != 4 || result.Stats.Unique != 1 {
		t.Errorf("Stats = %+v, want processed:4 unique:1", result.Stats)
	}
}

func TestCollector_LeadingZerosMerge(t *testing.T) {
	result := collect("01.2.3.4:80", "1.2.3.4:080", "001.002.003.004 80")

	if got := result.Lines(); !slices.Equal(got, []string{"1.2.3.4 80"}) {
		t.Errorf("Lines() = %v, want single entry", got)
	}
}

func TestCollector_FirstTagWins(t *testing.T) {
	result := collect("1.2.3.4:80#first", "1.2.3.4:80#second")

	if len(result.Endpoints) != 1 {
		t.Fatalf("expected one endpoint, got %d", len(result.Endpoints))
	}
	if tag := result.Endpoints[0].Tag; tag != "first" {
		t.Errorf("Tag = %q, want %q", tag, "first")
	}
}

func TestCollector_NumericSort(t *testing.T) {
	result := collect("10.0.0.1:80", "2.0.0.1:80", "2.0.0.1:8080")

	want := []string{"2.0.0.1 80", "2.0.0.1 8080", "10.0.0.1 80"}
	if got := result.Lines(); !slices.Equal(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
}

func TestCollector_SortByEveryOctetThenPort(t *testing.T) {
	result := collect(
		"1.1.1.10 80",
		"1.1.1.9 80",
		"1.1.2.1 1",
		"1.1.1.9 443",
		"1.1.1.9 22",
		"0.255.255.255 65535",
	)

	want := []string{
		"0.255.255.255 65535",
		"1.1.1.9 22",
		"1.1.1.9 80",
		"1.1.1.9 443",
		"1.1.1.10 80",
		"1.1.2.1 1",
	}
	if got := result.Lines(); !slices.Equal(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
}

func TestCollector_CommentsNeverProcessed(t *testing.T) {
	result := collect("", "# comment", "// comment")

	s := result.Stats
	if s.Processed != 0 || s.Skipped != 3 || s.Total != 3 || s.Unique != 0 {
		t.Errorf("Stats = %+v, want all three skipped", s)
	}
	if s.Rejected[endpoint.InvalidFormat] != 3 {
		t.Errorf("Rejected = %v, want three invalid_format", s.Rejected)
	}
	if len(result.Lines()) != 0 {
		t.Errorf("expected no lines, got %v", result.Lines())
	}
}

func TestCollector_AddAfterFinalizePanics(t *testing.T) {
	c := New()
	c.AddLine("1.2.3.4:80")
	c.Finalize()

	if !c.Finalized() {
		t.Fatal("expected collector to be finalized")
	}

	defer func() {
		if r := recover(); r != ErrFinalized {
			t.Errorf("recover() = %v, want %q", r, ErrFinalized)
		}
	}()
	c.Add(endpoint.Parse("5.6.7.8:80"))
}

func TestCollector_DoubleFinalizePanics(t *testing.T) {
	c := New()
	c.Finalize()

	defer func() {
		if r := recover(); r != ErrFinalized {
			t.Errorf("recover() = %v, want %q", r, ErrFinalized)
		}
	}()
	c.Finalize()
}

func TestCollector_StatsSnapshotIsolated(t *testing.T) {
	c := New()
	c.AddLine("bad")
	snap := c.Stats()
	snap.Rejected[endpoint.InvalidFormat] = 100

	if got := c.Stats().Rejected[endpoint.InvalidFormat]; got != 1 {
		t.Errorf("snapshot mutation leaked into collector: %d", got)
	}
}

type prefixMatcher netip.Prefix

func (p prefixMatcher) Contains(addr netip.Addr) bool {
	return netip.Prefix(p).Contains(addr)
}

func TestResult_Exclude(t *testing.T) {
	result := collect("10.0.0.1:80", "10.0.0.2:80", "8.8.8.8:53")

	filtered, removed := result.Exclude(prefixMatcher(netip.MustParsePrefix("10.0.0.0/8")))
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if got := filtered.Lines(); !slices.Equal(got, []string{"8.8.8.8 53"}) {
		t.Errorf("Lines() = %v", got)
	}
	if filtered.Stats.Unique != 3 {
		t.Errorf("core counters must not change, Unique = %d", filtered.Stats.Unique)
	}
	if len(result.Endpoints) != 3 {
		t.Errorf("original result was modified")
	}

	same, removed := result.Exclude(nil)
	if same != result || removed != 0 {
		t.Errorf("nil matcher must return the result unchanged")
	}
}
