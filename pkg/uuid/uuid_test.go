package uuid

import (
	"testing"
	"time"
)

func TestNew_VersionAndVariant(t *testing.T) {
	u, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v := u[6] >> 4; v != 7 {
		t.Fatalf("expected version 7, got %d", v)
	}
	if u[8]&0xc0 != 0x80 {
		t.Fatalf("expected RFC 4122 variant, got %02x", u[8])
	}
}

func TestNew_SortableByCreation(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Compare(b) >= 0 {
		t.Fatalf("expected %s < %s", a, b)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	u, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	parsed, err := Parse(u.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed != u {
		t.Fatalf("round trip mismatch: %s vs %s", u, parsed)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "not-a-uuid", "00000000-0000-0000-0000"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestTime_Embedded(t *testing.T) {
	before := time.Now().Truncate(time.Millisecond)
	u, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := u.Time()
	if got.Before(before.Add(-time.Second)) || got.After(time.Now().Add(time.Second)) {
		t.Fatalf("embedded time %v not close to now", got)
	}
}
