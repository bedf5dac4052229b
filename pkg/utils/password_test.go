package utils

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == "secret1" {
		t.Fatal("hash must not equal plaintext")
	}
	if a == b {
		t.Fatal("expected per-call salt to produce different hashes")
	}
	if !h.Verify("secret1", a) || !h.Verify("secret1", b) {
		t.Fatal("expected both hashes to verify")
	}
	if h.Verify("secret2", a) {
		t.Fatal("wrong password verified")
	}
}

func TestHasher_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	for _, hashed := range []string{"", "not-a-hash", "$2a$04$short"} {
		if h.Verify("secret1", hashed) {
			t.Fatalf("malformed hash %q verified", hashed)
		}
	}
}

func TestHasher_TooLong(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("x", 73))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}
