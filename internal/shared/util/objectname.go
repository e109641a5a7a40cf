package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"
)

// ObjectName builds the stored file name for an upload as
// {unixSeconds}-{randomHex}{ext}. The original extension is preserved so
// content types can be derived later; the random suffix keeps repeated
// uploads of the same file from colliding.
func ObjectName(sanitizedName string) string {
	ext := filepath.Ext(sanitizedName)
	var b [8]byte
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	if _, err := rand.Read(b[:]); err == nil {
		suffix = hex.EncodeToString(b[:])
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UTC().Unix(), suffix, ext)
}
