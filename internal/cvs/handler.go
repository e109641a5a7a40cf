package cvs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // matches the validator's 10 MiB limit

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches CV routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cvs", h.upload)
	rg.GET("/cvs", h.list)
	rg.POST("/cvs/:id/default", h.setDefault)
	rg.DELETE("/cvs/:id", h.remove)
	rg.GET("/cvs/:id/preview", h.preview)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize+1)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	declaredMime := fileHeader.Header.Get("Content-Type")

	rec, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, declaredMime, fileHeader.Size, file)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, verr.Code, verr.Message, nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload CV", nil)
		}
		return
	}

	c.Set("cvId", rec.ID)
	respond.JSON(c, http.StatusCreated, toResponse(rec))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	recs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list CVs", nil)
		return
	}

	resp := make([]CVResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, toResponse(rec))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) setDefault(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	cvID := c.Param("id")

	if err := h.Svc.SetDefault(c.Request.Context(), userID, cvID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "cv not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to set default CV", nil)
		}
		return
	}

	c.Set("cvId", cvID)
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	cvID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, cvID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "cv not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete CV", nil)
		}
		return
	}

	c.Set("cvId", cvID)
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) preview(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	cvID := c.Param("id")

	url, err := h.Svc.PreviewURL(c.Request.Context(), userID, cvID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "cv not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create preview link", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"url": url})
}
