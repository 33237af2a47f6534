package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/vetdesk/internal/errors"
)

const (
	credentialBytes = 32
	// TokenPrefix marks bearer tokens so leaked ones are easy to grep for.
	TokenPrefix = "vdt_"
)

// randomCredential returns prefix followed by 32 random bytes, base64 URL encoded without
// padding.
func randomCredential(prefix string) (string, error) {
	buf := make([]byte, credentialBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return prefix + base64.RawURLEncoding.EncodeToString(buf), nil
}

type tokenService struct{}

// NewTokenService returns a TokenService that stores tokens as SHA-256 digests. Tokens
// are high-entropy, so a fast digest is enough for lookup.
func NewTokenService() TokenService {
	return tokenService{}
}

func (s tokenService) GenerateToken() (plainToken string, tokenHash string, err error) {
	plainToken, err = randomCredential(TokenPrefix)
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}
	return plainToken, s.HashToken(plainToken), nil
}

func (tokenService) HashToken(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}

type secretService struct {
	hasher *pwdhash.PasswordHasher
}

// NewSecretService returns a SecretService hashing with the Moderate Argon2id policy.
// It panics only if the built-in policy is rejected.
func NewSecretService() SecretService {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		panic(err)
	}
	return &secretService{hasher: hasher}
}

func (s *secretService) GenerateSecret() (plainSecret string, hashedSecret string, err error) {
	plainSecret, err = randomCredential("")
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random secret")
	}
	if hashedSecret, err = s.HashSecret(plainSecret); err != nil {
		return "", "", err
	}
	return plainSecret, hashedSecret, nil
}

func (s *secretService) HashSecret(plainSecret string) (string, error) {
	hashed, err := s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash secret")
	}
	return hashed, nil
}

// CompareSecret never matches a malformed hash.
func (s *secretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	ok, err := s.hasher.Verify([]byte(plainSecret), hashedSecret)
	return err == nil && ok
}
