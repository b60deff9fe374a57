package service

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"travro/internal/apperr"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cr3t")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cr3t" {
		t.Fatalf("hash must not equal the plain password")
	}
	if cost, err := bcrypt.Cost([]byte(hash)); err != nil || cost != bcrypt.MinCost {
		t.Fatalf("unexpected cost %d (err %v)", cost, err)
	}
	if !h.Verify(hash, "s3cr3t") {
		t.Fatalf("expected matching password to verify")
	}
	if h.Verify(hash, "wrong") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatalf("two hashes of the same password should differ")
	}
}

func TestBcryptHasher_RejectsEmpty(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	for _, in := range []string{"", "   "} {
		if _, err := h.Hash(in); !errors.Is(err, apperr.ErrInvalidInput) {
			t.Fatalf("Hash(%q): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	if _, err := h.Hash(strings.Repeat("x", 73)); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBcryptHasher_MalformedHashIsMismatch(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	if h.Verify("not-a-bcrypt-hash", "anything") {
		t.Fatalf("malformed hash must not verify")
	}
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	if got := NewBcryptHasher(1).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewBcryptHasher(99).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
}
