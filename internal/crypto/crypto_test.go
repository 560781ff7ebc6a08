// Package crypto tests for password hashing and key derivation.
package crypto

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// TestHashVerify_roundtrip verifies basic hashing and verification.
func TestHashVerify_roundtrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("test")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "test" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() = %q is not a bcrypt hash", hash)
	}
	if err := h.Verify(hash, "test"); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
	if err := h.Verify(hash, "wrong"); err != ErrMismatch {
		t.Errorf("Verify(wrong) = %v, want ErrMismatch", err)
	}
}

// TestHash_salted verifies equal passwords produce different hashes.
func TestHash_salted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Error("Hash() produced identical hashes for the same password")
	}
}

func TestHash_empty(t *testing.T) {
	if _, err := NewHasher(bcrypt.MinCost).Hash(""); err != ErrEmptyPassword {
		t.Errorf("Hash(\"\") error = %v, want ErrEmptyPassword", err)
	}
}

func TestVerify_garbageHash(t *testing.T) {
	if err := NewHasher(bcrypt.MinCost).Verify("not-a-hash", "x"); err == nil {
		t.Error("Verify() accepted a malformed hash")
	}
}

func TestNewHasher_clampsCost(t *testing.T) {
	if h := NewHasher(99); h.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want default", h.cost)
	}
	if h := NewHasher(0); h.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want default", h.cost)
	}
}

// TestDeriveKey verifies keys are deterministic and purpose-bound.
func TestDeriveKey(t *testing.T) {
	a := DeriveKey("session", "secret")
	if len(a) != 32 {
		t.Fatalf("len(DeriveKey()) = %d, want 32", len(a))
	}
	if !bytes.Equal(a, DeriveKey("session", "secret")) {
		t.Error("DeriveKey() is not deterministic")
	}
	if bytes.Equal(a, DeriveKey("other", "secret")) {
		t.Error("DeriveKey() ignores the purpose")
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("127.0.0.1", "curl/8.0")
	if a != Fingerprint("127.0.0.1", "curl/8.0") {
		t.Error("Fingerprint() is not deterministic")
	}
	if a == Fingerprint("127.0.0.2", "curl/8.0") {
		t.Error("Fingerprint() ignores the address")
	}
	// Part boundaries matter.
	if Fingerprint("ab", "c") == Fingerprint("a", "bc") {
		t.Error("Fingerprint() is ambiguous across parts")
	}
}
