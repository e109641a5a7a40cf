package server

import (
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/shared/server/respond"
	"coach-backend/internal/shared/storage/object"
)

// FilesHandler serves locally stored objects behind signed expiring preview
// links. The expires query parameter is the unix timestamp after which the
// link is dead; the sig parameter is the HMAC over key and expiry, so neither
// can be forged or extended client side.
func FilesHandler(store object.ObjectStore, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if unescaped, err := url.PathUnescape(key); err == nil {
			key = unescaped
		}
		if key == "" {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}

		expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
		if err != nil {
			respond.Error(c, http.StatusForbidden, "link_invalid", "preview link is invalid", nil)
			return
		}
		if !object.VerifyPreview(secret, key, expires, c.Query("sig")) {
			respond.Error(c, http.StatusForbidden, "link_invalid", "preview link is invalid", nil)
			return
		}
		if time.Now().UTC().Unix() > expires {
			respond.Error(c, http.StatusGone, "link_expired", "preview link has expired", nil)
			return
		}

		reader, err := store.Open(c.Request.Context(), key)
		if err != nil {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		defer reader.Close()

		contentType := mime.TypeByExtension(filepath.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, reader)
	}
}
