package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(&config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour})

	sessionID := uuid.New()
	token, err := svc.Issue(sessionID, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.SessionID != sessionID.String() {
		t.Errorf("session ID %q, want %q", claims.SessionID, sessionID)
	}
	if claims.CandidateEmail != "ada@example.com" {
		t.Errorf("email %q, want ada@example.com", claims.CandidateEmail)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService(&config.Config{JWTSecret: "secret-a", JWTExpiry: time.Hour})
	verifier := NewTokenService(&config.Config{JWTSecret: "secret-b", JWTExpiry: time.Hour})

	token, err := issuer.Issue(uuid.New(), "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := verifier.Validate(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService(&config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Minute})

	token, err := svc.Issue(uuid.New(), "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := svc.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	svc := NewTokenService(&config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour})

	if _, err := svc.Validate("not-a-token"); err == nil {
		t.Fatal("expected validation to fail for garbage input")
	}
}
