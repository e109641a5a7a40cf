package pipeline

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/cvs"
	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
)

// Handler wires pipeline HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches processing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cvs/:id/process", h.process)
	rg.GET("/cvs/:id/content", h.content)
}

// ContentResponse is the wire shape of processed CV content.
type ContentResponse struct {
	CVID             string            `json:"cvId"`
	RawText          string            `json:"rawText"`
	ProcessingMethod string            `json:"processingMethod"`
	Confidence       float64           `json:"confidence"`
	Structured       StructuredContent `json:"structured"`
	ProcessedAt      time.Time         `json:"processedAt"`
}

func toContentResponse(content ProcessedContent) ContentResponse {
	return ContentResponse{
		CVID:             content.CVID,
		RawText:          content.RawText,
		ProcessingMethod: string(content.Method),
		Confidence:       content.Confidence,
		Structured:       content.Structured,
		ProcessedAt:      content.CreatedAt,
	}
}

func (h *Handler) process(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	cvID := c.Param("id")
	c.Set("cvId", cvID)
	c.Set("processingMethod", "")

	content, err := h.Svc.Process(c.Request.Context(), userID, cvID)
	if err != nil {
		switch {
		case errors.Is(err, cvs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "cv not found", nil)
		case errors.Is(err, ErrExtractionFailed):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not extract readable text from the document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process CV", nil)
		}
		return
	}

	c.Set("processingMethod", string(content.Method))
	respond.JSON(c, http.StatusOK, toContentResponse(content))
}

func (h *Handler) content(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	cvID := c.Param("id")
	c.Set("cvId", cvID)

	content, err := h.Svc.GetContent(c.Request.Context(), userID, cvID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoContent):
			respond.Error(c, http.StatusNotFound, "not_found", "cv has not been processed yet", nil)
		case errors.Is(err, cvs.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load CV content", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toContentResponse(content))
}
