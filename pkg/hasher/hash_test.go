package hasher

import "testing"

func TestSum_Deterministic(t *testing.T) {
	in := "same input"
	h1 := Hash(in)
	h2 := Hash(in)
	if h1 != h2 {
		t.Fatalf("hash must be deterministic, got %s vs %s", h1, h2)
	}
}

func TestSum_DifferentInputs(t *testing.T) {
	if Hash("a") == Hash("b") {
		t.Fatalf("different inputs should not produce the same hash")
	}
}

func TestSum_KnownVector(t *testing.T) {
	// SHA-256("hello") per standard test vectors
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := Hash("hello")
	if got != want {
		t.Fatalf("unexpected hash: got %s want %s", got, want)
	}
}

func TestVerify(t *testing.T) {
	h := Hash("credentials")
	if !Verify("credentials", h) {
		t.Fatal("Verify must accept the value the hash was computed from")
	}
	if Verify("rotated credentials", h) {
		t.Fatal("Verify must reject a different value")
	}
}

func TestSumBytes_MatchesHash(t *testing.T) {
	if SumBytes([]byte("payload")) != Hash("payload") {
		t.Fatalf("SumBytes and Hash must agree on the same input")
	}
}

func BenchmarkSum(b *testing.B) {
	in := "some reasonably sized input"

	for b.Loop() {
		_ = Hash(in)
	}
}
