package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
)

// signingInfo versions the HKDF derivation.
const signingInfo = "vetdesk-audit-log-signing-v1"

type auditSigner struct{}

// NewAuditSigner creates an AuditSigner that derives an HMAC key with HKDF-SHA256 and
// signs a length-prefixed canonical encoding of the record.
func NewAuditSigner() AuditSigner {
	return &auditSigner{}
}

func (a *auditSigner) deriveSigningKey(key []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, key, nil, []byte(signingInfo))

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(reader, signingKey); err != nil {
		return nil, err
	}
	return signingKey, nil
}

// canonicalize encodes request_id || moderator_id || capability || path || metadata || created_at.
func (a *auditSigner) canonicalize(log *authDomain.AuditLog) ([]byte, error) {
	buf := make([]byte, 0, 512)

	buf = append(buf, log.RequestID[:]...)
	buf = append(buf, log.ModeratorID[:]...)
	buf = appendLengthPrefixed(buf, []byte(log.Capability))
	buf = appendLengthPrefixed(buf, []byte(log.Path))

	if log.Metadata != nil {
		// encoding/json sorts map keys
		metadata, err := json.Marshal(log.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		buf = appendLengthPrefixed(buf, metadata)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	buf = binary.BigEndian.AppendUint64(buf, uint64(log.CreatedAt.UnixNano())) //nolint:gosec
	return buf, nil
}

func appendLengthPrefixed(buf []byte, data []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data))) //nolint:gosec
	return append(buf, data...)
}

// Sign returns the HMAC-SHA256 signature of the record.
func (a *auditSigner) Sign(key []byte, log *authDomain.AuditLog) ([]byte, error) {
	signingKey, err := a.deriveSigningKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer clear(signingKey)

	canonical, err := a.canonicalize(log)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize log: %w", err)
	}

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

// Verify returns ErrSignatureInvalid when the stored signature does not match.
func (a *auditSigner) Verify(key []byte, log *authDomain.AuditLog) error {
	expected, err := a.Sign(key, log)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(log.Signature, expected) {
		return authDomain.ErrSignatureInvalid
	}
	return nil
}
