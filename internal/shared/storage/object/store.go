package object

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// ObjectStore defines the contract for saving, retrieving, and removing
// binary objects, and for issuing time-limited preview links.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
	PresignGet(ctx context.Context, storageKey string, expires time.Duration) (string, error)
}

// SignPreview computes the hex HMAC-SHA256 signature carried by app-served
// preview links. The signature binds the storage key to its expiry so neither
// can be altered after the link is minted.
func SignPreview(secret []byte, storageKey string, expiresUnix int64) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%s|%d", storageKey, expiresUnix)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPreview reports whether sig matches the link parameters in constant
// time.
func VerifyPreview(secret []byte, storageKey string, expiresUnix int64, sig string) bool {
	expected := SignPreview(secret, storageKey, expiresUnix)
	return hmac.Equal([]byte(expected), []byte(sig))
}
