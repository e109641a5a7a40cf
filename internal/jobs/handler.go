package jobs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
)

// Handler wires job HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.create)
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/:id", h.get)
}

type createRequest struct {
	URL string `json:"url" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url is required", nil)
		return
	}

	job, err := h.Svc.FromURL(c.Request.Context(), userID, req.URL)
	if err != nil {
		writeFetchError(c, err)
		return
	}

	c.Set("jobId", job.ID)
	respond.JSON(c, http.StatusCreated, job)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobID := c.Param("id")
	c.Set("jobId", jobID)

	job, err := h.Svc.Get(c.Request.Context(), userID, jobID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load job", nil)
		return
	}
	respond.JSON(c, http.StatusOK, job)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	jobs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}
	if jobs == nil {
		jobs = []Job{}
	}
	respond.JSON(c, http.StatusOK, jobs)
}

func writeFetchError(c *gin.Context, err error) {
	var ferr *FetchError
	if errors.As(err, &ferr) {
		respond.Error(c, statusForCode(ferr.Code), ferr.Code, MessageFor(ferr.Code), nil)
		return
	}
	if errors.Is(err, ErrBadResponse) {
		respond.Error(c, http.StatusBadGateway, "bad_ai_response", "the analysis service returned an unusable response", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process job posting", nil)
}

func statusForCode(code string) int {
	switch code {
	case CodeInvalidURL:
		return http.StatusBadRequest
	case CodePageNotFound, CodeAccessDenied, CodeInsufficientContent:
		return http.StatusUnprocessableEntity
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}
