// Package auth provides credential authentication and session token handling.
package auth

import (
	"strings"

	"guidepost/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// Principal describes an authenticated moderator account.
type Principal struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CredentialStore looks up a principal and its password hash by email.
// The production store is a single pre-provisioned account, but the
// interface keeps the authenticator decoupled from where accounts live.
type CredentialStore interface {
	Lookup(email string) (*Principal, []byte, bool)
}

// StaticCredentialStore holds one moderator account built from configuration.
type StaticCredentialStore struct {
	principal    Principal
	passwordHash []byte
}

// NewStaticCredentialStore hashes the configured password once at startup.
func NewStaticCredentialStore(cfg *config.Config) (*StaticCredentialStore, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.ModeratorPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &StaticCredentialStore{
		principal: Principal{
			ID:    1,
			Email: cfg.ModeratorEmail,
			Role:  "moderator",
		},
		passwordHash: hash,
	}, nil
}

// Lookup returns the stored principal when the email matches exactly.
func (s *StaticCredentialStore) Lookup(email string) (*Principal, []byte, bool) {
	if email != s.principal.Email {
		return nil, nil, false
	}
	p := s.principal
	return &p, s.passwordHash, true
}

// Authenticator validates login attempts against a credential store.
type Authenticator struct {
	store CredentialStore
}

// NewAuthenticator returns an Authenticator backed by the given store.
func NewAuthenticator(store CredentialStore) *Authenticator {
	return &Authenticator{store: store}
}

// Authenticate returns the principal on an exact email and password match,
// nil otherwise. No lockout or backoff; failure handling is the caller's
// concern.
func (a *Authenticator) Authenticate(email, password string) *Principal {
	principal, hash, ok := a.store.Lookup(strings.TrimSpace(email))
	if !ok {
		// Keep unknown-email timing in line with a wrong-password attempt.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil
	}
	return principal
}

var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("guidepost-dummy"), bcrypt.MinCost)
	return h
}()
