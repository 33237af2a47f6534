package service

import (
	"context"
	"encoding/base64"

	"gocloud.dev/secrets"
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"

	apperrors "github.com/allisson/vetdesk/internal/errors"
)

type gocloudKMS struct{}

// NewKMSService returns a KMSService backed by gocloud.dev/secrets. Supported schemes are
// gcpkms://, awskms://, azurekeyvault://, hashivault:// and base64key://.
func NewKMSService() KMSService {
	return gocloudKMS{}
}

func (gocloudKMS) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open KMS keeper")
	}
	return keeper, nil
}

// LoadSigningKey returns the audit signing key from its base64 configuration value.
// Without keyURI the decoded bytes are the key; with it they are a ciphertext decrypted
// through the KMS. An empty encodedKey yields a nil key, which disables signing.
func LoadSigningKey(ctx context.Context, kms KMSService, keyURI, encodedKey string) ([]byte, error) {
	if encodedKey == "" {
		return nil, nil
	}

	material, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode audit signing key")
	}
	if keyURI == "" {
		return material, nil
	}

	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	key, err := keeper.Decrypt(ctx, material)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt audit signing key")
	}
	return key, nil
}
