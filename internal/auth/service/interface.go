// Package service provides the cryptographic building blocks of moderator authentication:
// secret hashing, bearer tokens, audit log signing and KMS access.
package service

import (
	"context"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
)

// SecretService generates and verifies moderator secrets.
type SecretService interface {
	// GenerateSecret returns a random plain secret and its Argon2id hash.
	GenerateSecret() (plainSecret string, hashedSecret string, err error)

	// HashSecret hashes a plain secret.
	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret reports whether plainSecret matches hashedSecret in constant time.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenService generates bearer tokens and hashes them for lookup.
type TokenService interface {
	GenerateToken() (plainToken string, tokenHash string, err error)
	HashToken(plainToken string) string
}

// AuditSigner signs and verifies audit records with a key derived from the audit signing key.
type AuditSigner interface {
	Sign(key []byte, log *authDomain.AuditLog) ([]byte, error)
	Verify(key []byte, log *authDomain.AuditLog) error
}

// KMSKeeper decrypts key material. *secrets.Keeper satisfies it.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
