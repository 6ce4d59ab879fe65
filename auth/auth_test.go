package auth

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "un-secret-de-test-suffisant"

func TestHashVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("motdepasse1")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if hash == "motdepasse1" {
		t.Fatal("Hash() returned the plaintext")
	}

	if err := h.Verify("motdepasse1", hash); err != nil {
		t.Errorf("Verify() error: %v", err)
	}
	if err := h.Verify("autremotdepasse", hash); err == nil {
		t.Error("Verify() accepted a wrong password")
	}
}

func TestHashRejectsBadLengths(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	if _, err := h.Hash("court"); err == nil {
		t.Error("Hash() accepted a 5-character password")
	}
	if _, err := h.Hash(strings.Repeat("a", 73)); err == nil {
		t.Error("Hash() accepted a 73-character password")
	}
}

func TestIssueParse(t *testing.T) {
	tokens, err := NewTokens(Config{JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("NewTokens() error: %v", err)
	}

	signed, err := tokens.Issue(42, "alice@example.com")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	claims, err := tokens.Parse(signed)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %s", claims.Email)
	}
	if claims.Subject != "42" {
		t.Errorf("Subject = %s", claims.Subject)
	}
	if claims.Issuer != "meetscribe" {
		t.Errorf("Issuer = %s", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokens(Config{JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("NewTokens() error: %v", err)
	}
	verifier, err := NewTokens(Config{JWTSecret: "une-autre-cle-de-signature"})
	if err != nil {
		t.Fatalf("NewTokens() error: %v", err)
	}

	signed, err := issuer.Issue(1, "a@b.fr")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if _, err := verifier.Parse(signed); err == nil {
		t.Error("Parse() accepted a token signed with another secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tokens, err := NewTokens(Config{JWTSecret: testSecret, TokenTTL: -time.Minute})
	if err != nil {
		t.Fatalf("NewTokens() error: %v", err)
	}

	signed, err := tokens.Issue(1, "a@b.fr")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if _, err := tokens.Parse(signed); err == nil {
		t.Error("Parse() accepted an expired token")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	tokens, err := NewTokens(Config{JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("NewTokens() error: %v", err)
	}
	if _, err := tokens.Parse("not.a.token"); err == nil {
		t.Error("Parse() accepted garbage input")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted a missing secret")
	}

	cfg.JWTSecret = "court"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted a short secret")
	}

	cfg.JWTSecret = testSecret
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
	if cfg.Issuer != "meetscribe" || cfg.TokenTTL != 24*time.Hour || cfg.BcryptCost != 12 {
		t.Errorf("defaults = %q, %s, %d", cfg.Issuer, cfg.TokenTTL, cfg.BcryptCost)
	}
}
