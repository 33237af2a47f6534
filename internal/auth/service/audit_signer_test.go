package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
)

func newSignedTestLog() *authDomain.AuditLog {
	return &authDomain.AuditLog{
		ID:          uuid.Must(uuid.NewV7()),
		RequestID:   uuid.Must(uuid.NewV7()),
		ModeratorID: uuid.Must(uuid.NewV7()),
		Capability:  "vet_assignment",
		Path:        "/v1/farms/f-1/assignment/vet",
		Metadata:    map[string]any{"method": "PUT", "farm_id": "f-1"},
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestAuditSigner_SignAndVerify(t *testing.T) {
	signer := NewAuditSigner()
	key := []byte("0123456789abcdef0123456789abcdef")
	log := newSignedTestLog()

	signature, err := signer.Sign(key, log)
	require.NoError(t, err)
	assert.Len(t, signature, 32)

	again, err := signer.Sign(key, log)
	require.NoError(t, err)
	assert.Equal(t, signature, again)

	log.Signature = signature
	assert.NoError(t, signer.Verify(key, log))
}

func TestAuditSigner_DetectsTampering(t *testing.T) {
	signer := NewAuditSigner()
	key := []byte("0123456789abcdef0123456789abcdef")

	tests := []struct {
		name   string
		tamper func(log *authDomain.AuditLog)
		key    []byte
	}{
		{name: "capability changed", tamper: func(l *authDomain.AuditLog) { l.Capability = "super_admin" }},
		{name: "path changed", tamper: func(l *authDomain.AuditLog) { l.Path = "/v1/catalog" }},
		{name: "moderator changed", tamper: func(l *authDomain.AuditLog) { l.ModeratorID = uuid.Must(uuid.NewV7()) }},
		{name: "metadata changed", tamper: func(l *authDomain.AuditLog) { l.Metadata["farm_id"] = "f-2" }},
		{name: "metadata removed", tamper: func(l *authDomain.AuditLog) { l.Metadata = nil }},
		{name: "timestamp changed", tamper: func(l *authDomain.AuditLog) { l.CreatedAt = l.CreatedAt.Add(time.Second) }},
		{name: "other key", tamper: func(l *authDomain.AuditLog) {}, key: []byte("another-key")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := newSignedTestLog()
			signature, err := signer.Sign(key, log)
			require.NoError(t, err)
			log.Signature = signature

			tt.tamper(log)
			verifyKey := key
			if tt.key != nil {
				verifyKey = tt.key
			}

			assert.ErrorIs(t, signer.Verify(verifyKey, log), authDomain.ErrSignatureInvalid)
		})
	}
}

func TestAuditSigner_FieldBoundaries(t *testing.T) {
	signer := NewAuditSigner()
	key := []byte("boundary-key")

	a := newSignedTestLog()
	a.Capability, a.Path = "ab", "c"
	b := *a
	b.Capability, b.Path = "a", "bc"

	sigA, err := signer.Sign(key, a)
	require.NoError(t, err)
	sigB, err := signer.Sign(key, &b)
	require.NoError(t, err)

	assert.NotEqual(t, sigA, sigB)
}

func BenchmarkAuditSigner_Sign(b *testing.B) {
	signer := NewAuditSigner()
	key := []byte("0123456789abcdef0123456789abcdef")
	log := newSignedTestLog()

	for b.Loop() {
		_, _ = signer.Sign(key, log)
	}
}
