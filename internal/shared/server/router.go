package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/agent"
	"coach-backend/internal/analysis"
	"coach-backend/internal/cvs"
	"coach-backend/internal/jobs"
	"coach-backend/internal/pipeline"
	"coach-backend/internal/profile"
	"coach-backend/internal/search"
	"coach-backend/internal/shared/config"
	"coach-backend/internal/shared/metrics"
	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/storage/object"
)

// Deps collects everything the router needs.
type Deps struct {
	Cfg           config.Config
	Store         object.ObjectStore
	PreviewSecret []byte

	CVs      *cvs.Handler
	Pipeline *pipeline.Handler
	Analysis *analysis.Handler
	Jobs     *jobs.Handler
	Profile  *profile.Handler
	Search   *search.Handler
	Agent    *agent.Handler
}

// NewRouter builds the gin engine with the full middleware chain and all
// application routes.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(deps.Cfg.CORSAllowOrigin))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// Preview links carry their own signed expiry; no identity header required.
	r.GET("/api/v1/files/*key", FilesHandler(deps.Store, deps.PreviewSecret))

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(deps.Cfg.Env))
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 5, Burst: 20},
			"UPLOAD":  {Rate: 0.5, Burst: 5},
			"AI":      {Rate: 1, Burst: 10},
		},
		GroupFor: rateGroup,
	}))

	deps.CVs.RegisterRoutes(api)
	deps.Pipeline.RegisterRoutes(api)
	deps.Analysis.RegisterRoutes(api)
	deps.Jobs.RegisterRoutes(api)
	deps.Profile.RegisterRoutes(api)
	deps.Search.RegisterRoutes(api)
	deps.Agent.RegisterRoutes(api)

	return r
}

// rateGroup buckets routes by cost. Uploads hit the object store, the AI
// routes hit the model provider, everything else shares the default bucket.
func rateGroup(c *gin.Context) string {
	path := c.Request.URL.Path
	switch {
	case c.Request.Method == http.MethodPost && path == "/api/v1/cvs":
		return "UPLOAD"
	case strings.HasPrefix(path, "/api/v1/analysis/"),
		strings.HasSuffix(path, "/process"),
		c.Request.Method == http.MethodPost && path == "/api/v1/jobs",
		path == "/api/v1/cvs/search",
		path == "/api/v1/agent/preprompt":
		return "AI"
	default:
		return "DEFAULT"
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
