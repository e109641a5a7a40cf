package search

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
)

// Handler wires the search endpoint to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cvs/search", h.search)
}

type searchRequest struct {
	Query      string `json:"query"`
	SearchType string `json:"search_type"`
	Limit      int    `json:"limit"`
}

func (h *Handler) search(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	results, err := h.Svc.Search(c.Request.Context(), userID, req.Query, req.SearchType, req.Limit)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "query is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "search failed", nil)
		return
	}
	if results == nil {
		results = []Result{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"results": results})
}
