package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
)

// Handler wires profile HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.get)
	rg.PUT("/profile", h.save)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	agg, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, agg)
}

type saveRequest struct {
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	ExperienceLevel string   `json:"experienceLevel"`
	TargetRoles     []string `json:"targetRoles"`
	NetworkID       string   `json:"networkId"`
	NetworkHeadline string   `json:"networkHeadline"`
	NetworkLocation string   `json:"networkLocation"`
	NetworkIndustry string   `json:"networkIndustry"`
	NetworkSummary  string   `json:"networkSummary"`
	NetworkSkills   []string `json:"networkSkills"`
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	p := Profile{
		UserID:          userID,
		FullName:        req.FullName,
		Email:           req.Email,
		ExperienceLevel: req.ExperienceLevel,
		TargetRoles:     req.TargetRoles,
		NetworkID:       req.NetworkID,
		NetworkHeadline: req.NetworkHeadline,
		NetworkLocation: req.NetworkLocation,
		NetworkIndustry: req.NetworkIndustry,
		NetworkSummary:  req.NetworkSummary,
		NetworkSkills:   req.NetworkSkills,
	}
	if err := h.Svc.Save(c.Request.Context(), p); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}
