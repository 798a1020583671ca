package service

import "testing"

func TestSHA256Hasher_KnownVector(t *testing.T) {
	h := NewSHA256Hasher()
	got := h.Digest("secret1")
	want := "5b11618c2e44027877d0cd0921ed166b9f176f50587fc91e7534dd2946db77d6"
	if got != want {
		t.Fatalf("Digest(\"secret1\") = %s, want %s", got, want)
	}
}

func TestSHA256Hasher_Deterministic(t *testing.T) {
	h := NewSHA256Hasher()
	for _, secret := range []string{"", "password", "pässwörd", "long-ish secret with spaces"} {
		if h.Digest(secret) != h.Digest(secret) {
			t.Fatalf("digest of %q is not deterministic", secret)
		}
	}
}

func TestSHA256Hasher_DistinctInputs(t *testing.T) {
	h := NewSHA256Hasher()
	if h.Digest("secret1") == h.Digest("secret2") {
		t.Fatal("distinct secrets produced the same digest")
	}
	if len(h.Digest("anything")) != 64 {
		t.Fatalf("digest length = %d, want 64", len(h.Digest("anything")))
	}
}
