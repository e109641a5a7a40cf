package agent

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/shared/server/respond"
)

// Handler wires the agent pre-prompt endpoint to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches agent routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/agent/preprompt", h.preprompt)
}

func (h *Handler) preprompt(c *gin.Context) {
	var cfg Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	session, err := h.Svc.Prepare(c.Request.Context(), cfg)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStyle):
			respond.Error(c, http.StatusBadRequest, "validation_error", "style must be mvp or full", nil)
		case errors.Is(err, ErrNoQuestions):
			respond.Error(c, http.StatusBadRequest, "validation_error", "at least one question is required", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "session_failed", "could not create the interview session", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, session)
}
