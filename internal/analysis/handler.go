package analysis

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/llm"
	"coach-backend/internal/shared/server/respond"
)

// Handler wires analysis HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analysis/gaps", h.gaps)
	rg.POST("/analysis/questions", h.questions)
}

type gapRequest struct {
	CVContent       json.RawMessage `json:"cvContent"`
	JobRequirements json.RawMessage `json:"jobRequirements"`
}

func (h *Handler) gaps(c *gin.Context) {
	var req gapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.AnalyzeGaps(c.Request.Context(), req.CVContent, req.JobRequirements)
	if err != nil {
		writeAnalysisError(c, err, "failed to analyze skill gaps")
		return
	}
	respond.JSON(c, http.StatusOK, result)
}

type questionRequest struct {
	GapAnalysis     json.RawMessage `json:"gapAnalysis"`
	JobRequirements json.RawMessage `json:"jobRequirements"`
	CVContent       json.RawMessage `json:"cvContent"`
}

func (h *Handler) questions(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	questions, err := h.Svc.GenerateQuestions(c.Request.Context(), req.GapAnalysis, req.JobRequirements, req.CVContent)
	if err != nil {
		writeAnalysisError(c, err, "failed to generate questions")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"questions": questions})
}

func writeAnalysisError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "cv content and job requirements are required", nil)
	case errors.Is(err, ErrBadResponse):
		respond.Error(c, http.StatusBadGateway, "bad_ai_response", "the analysis service returned an unusable response", nil)
	case errors.Is(err, llm.ErrInvalidAPIKey):
		respond.Error(c, http.StatusBadGateway, "upstream_auth", "the analysis service rejected our credentials", nil)
	case errors.Is(err, llm.ErrRateLimited):
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "too many analysis requests, try again shortly", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
