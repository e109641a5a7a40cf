package bootstrap

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"

	"coach-backend/internal/agent"
	"coach-backend/internal/analysis"
	"coach-backend/internal/cvs"
	"coach-backend/internal/jobs"
	"coach-backend/internal/llm"
	"coach-backend/internal/llm/openai"
	"coach-backend/internal/pipeline"
	"coach-backend/internal/profile"
	"coach-backend/internal/search"
	"coach-backend/internal/shared/config"
	"coach-backend/internal/shared/server"
	"coach-backend/internal/shared/storage/db"
	"coach-backend/internal/shared/storage/object"
	"coach-backend/internal/shared/storage/object/local"
	"coach-backend/internal/shared/storage/object/s3"
	"coach-backend/internal/shared/telemetry"

	"github.com/gin-gonic/gin"
)

// App holds the wired application. With no DATABASE_URL outside production
// it falls back to in-memory repositories for local development.
type App struct {
	Cfg           config.Config
	DB            *sql.DB
	Store         object.ObjectStore
	PreviewSecret []byte
	LLM           llm.Client

	CVs      *cvs.Service
	Pipeline *pipeline.Service
	Analysis *analysis.Service
	Jobs     *jobs.Service
	Profile  *profile.Service
	Search   *search.Service
	Agent    *agent.Service
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Cfg: cfg}

	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		app.DB = conn
	} else {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		telemetry.Info("bootstrap.memory_mode", map[string]any{"env": cfg.Env})
	}

	secret, err := previewSecret(cfg)
	if err != nil {
		return nil, err
	}
	app.PreviewSecret = secret

	store, err := newObjectStore(ctx, cfg, secret)
	if err != nil {
		return nil, err
	}
	app.Store = store

	app.LLM = newLLMClient(cfg)

	var (
		cvRepo      cvs.Repo
		contentRepo pipeline.ContentRepo
		jobRepo     jobs.Repo
		profileRepo profile.Repo
		searchRepo  search.Repo
		sink        pipeline.EmbeddingSink
	)
	if app.DB != nil {
		cvRepo = &cvs.PGRepo{DB: app.DB}
		contentRepo = &pipeline.PGContentRepo{DB: app.DB}
		jobRepo = &jobs.PGRepo{DB: app.DB}
		profileRepo = &profile.PGRepo{DB: app.DB}
		pgSearch := &search.PGRepo{DB: app.DB}
		searchRepo = pgSearch
		sink = pgSearch
	} else {
		memContents := pipeline.NewMemoryContentRepo()
		memRecords := cvs.NewMemoryRepo()
		cvRepo = memRecords
		contentRepo = memContents
		jobRepo = jobs.NewMemoryRepo()
		profileRepo = profile.NewMemoryRepo()
		searchRepo = &search.MemoryRepo{Records: memRecords, Contents: memContents}
	}

	app.CVs = &cvs.Service{Store: store, Repo: cvRepo}
	app.Pipeline = &pipeline.Service{
		Records:    cvRepo,
		Store:      store,
		Contents:   contentRepo,
		LLM:        app.LLM,
		OCR:        pipeline.TesseractEngine{},
		Embeddings: sink,
	}
	app.Analysis = &analysis.Service{LLM: app.LLM}
	app.Jobs = &jobs.Service{Fetcher: jobs.NewFetcher(), LLM: app.LLM, Repo: jobRepo}
	app.Profile = &profile.Service{Repo: profileRepo, Contents: contentRepo}
	app.Search = &search.Service{LLM: app.LLM, Repo: searchRepo}
	app.Agent = agent.NewService(cfg.AgentSessionURL, cfg.AgentAPIKey)

	return app, nil
}

// Router builds the HTTP router over the wired services.
func (a *App) Router() *gin.Engine {
	return server.NewRouter(server.Deps{
		Cfg:           a.Cfg,
		Store:         a.Store,
		PreviewSecret: a.PreviewSecret,
		CVs:           cvs.NewHandler(a.CVs),
		Pipeline:      pipeline.NewHandler(a.Pipeline),
		Analysis:      analysis.NewHandler(a.Analysis),
		Jobs:          jobs.NewHandler(a.Jobs),
		Profile:       profile.NewHandler(a.Profile),
		Search:        search.NewHandler(a.Search),
		Agent:         agent.NewHandler(a.Agent),
	})
}

// Close releases held resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func newObjectStore(ctx context.Context, cfg config.Config, previewSecret []byte) (object.ObjectStore, error) {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, fmt.Errorf("init s3 store: %w", err)
		}
		return store, nil
	}
	return local.New(cfg.LocalStoreDir, previewSecret), nil
}

// previewSecret returns the configured preview signing secret, or a random
// per-process one. A generated secret invalidates outstanding links on
// restart, which is acceptable outside production.
func previewSecret(cfg config.Config) ([]byte, error) {
	if cfg.PreviewSecret != "" {
		return []byte(cfg.PreviewSecret), nil
	}
	if cfg.Env == "production" && cfg.ObjectStoreType != "s3" {
		return nil, fmt.Errorf("PREVIEW_LINK_SECRET is required in production with the local store")
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate preview secret: %w", err)
	}
	telemetry.Info("bootstrap.preview_secret_generated", map[string]any{"env": cfg.Env})
	return secret, nil
}

func newLLMClient(cfg config.Config) llm.Client {
	if cfg.LLMAPIKey == "" {
		telemetry.Info("bootstrap.llm_placeholder", map[string]any{"provider": cfg.LLMProvider})
		return llm.PlaceholderClient{}
	}
	client, err := openai.NewClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.EmbeddingModel)
	if err != nil {
		telemetry.Error("bootstrap.llm_init", map[string]any{"err": err.Error()})
		return llm.PlaceholderClient{}
	}
	return client
}
