package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// newTestPasswordService uses bcrypt.MinCost so each hash takes a few
// milliseconds instead of a quarter second.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceForTest(bcrypt.MinCost)
}

// =========================================================================
// CONSTRUCTION TESTS
// =========================================================================

func TestNewPasswordService_CostBounds(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"configured", 10, 10},
		{"minimum", bcrypt.MinCost, bcrypt.MinCost},
		{"below minimum", 2, DefaultCost},
		{"above maximum", 40, DefaultCost},
		{"zero", 0, DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPasswordService(tt.cost).cost; got != tt.want {
				t.Errorf("NewPasswordService(%d).cost = %d, want %d", tt.cost, got, tt.want)
			}
		})
	}
}

// =========================================================================
// Hash TESTS
// =========================================================================

func TestHash_NeverReturnsPlaintext(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("may-the-force")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "may-the-force" || strings.Contains(hash, "may-the-force") {
		t.Fatalf("Hash() leaked the plaintext: %q", hash)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() does not look like a bcrypt hash: %q", hash)
	}
}

func TestHash_UsesConfiguredCost(t *testing.T) {
	ps := NewPasswordServiceForTest(5)

	hash, err := ps.Hash("it's-a-trap")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost() error = %v", err)
	}
	if cost != 5 {
		t.Errorf("hash cost = %d, want 5", cost)
	}
}

func TestHash_SaltIsRandom(t *testing.T) {
	ps := newTestPasswordService()

	a, _ := ps.Hash("same-password")
	b, _ := ps.Hash("same-password")
	if a == b {
		t.Error("Hash() produced identical hashes for the same password")
	}
}

func TestHash_LengthLimit(t *testing.T) {
	ps := newTestPasswordService()

	if _, err := ps.Hash(strings.Repeat("x", MaxPasswordBytes)); err != nil {
		t.Fatalf("Hash() should accept a %d-byte password, got %v", MaxPasswordBytes, err)
	}
	if _, err := ps.Hash(strings.Repeat("x", MaxPasswordBytes+1)); err == nil {
		t.Fatalf("Hash() should reject a %d-byte password", MaxPasswordBytes+1)
	}
}

// =========================================================================
// Verify TESTS
// =========================================================================

func TestVerify(t *testing.T) {
	ps := newTestPasswordService()
	hash, err := ps.Hash("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  bool
		mismatch bool
	}{
		{"correct password", hash, "correct-horse-battery-staple", false, false},
		{"wrong password", hash, "incorrect-horse", true, true},
		{"empty password", hash, "", true, true},
		{"garbage hash", "not-a-bcrypt-hash", "correct-horse-battery-staple", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ps.Verify(tt.hash, tt.password)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := errors.Is(err, ErrPasswordMismatch); got != tt.mismatch {
				t.Errorf("errors.Is(err, ErrPasswordMismatch) = %v, want %v", got, tt.mismatch)
			}
		})
	}
}

func TestVerifyDummy_AlwaysFails(t *testing.T) {
	ps := newTestPasswordService()

	for _, pw := range []string{"", "anything", "not-a-real-password"} {
		if err := ps.VerifyDummy(pw); !errors.Is(err, ErrPasswordMismatch) {
			t.Errorf("VerifyDummy(%q) = %v, want ErrPasswordMismatch", pw, err)
		}
	}
}

func TestHashVerify_RoundTrip(t *testing.T) {
	ps := newTestPasswordService()

	cases := []struct {
		name     string
		password string
	}{
		{"alphanumeric", "r2d2c3po"},
		{"symbols", "p@$$w0rd!#%"},
		{"unicode", "пароль-密码"},
		{"surrounding spaces", "  padme  "},
		{"single space", " "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hash, err := ps.Hash(tc.password)
			if err != nil {
				t.Fatalf("Hash(%q) error = %v", tc.password, err)
			}
			if err := ps.Verify(hash, tc.password); err != nil {
				t.Errorf("Verify() failed for %q: %v", tc.password, err)
			}
		})
	}
}
