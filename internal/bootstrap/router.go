package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/forless-ai/forless-backend/config"
	adminrepo "github.com/forless-ai/forless-backend/internal/admin"
	adminhttp "github.com/forless-ai/forless-backend/internal/admin/http"
	httpapi "github.com/forless-ai/forless-backend/internal/api/http"
	apimw "github.com/forless-ai/forless-backend/internal/api/http/middleware"
	"github.com/forless-ai/forless-backend/internal/auth"
	authmw "github.com/forless-ai/forless-backend/internal/auth/middleware"
	"github.com/forless-ai/forless-backend/internal/generation"
	generationhttp "github.com/forless-ai/forless-backend/internal/generation/http"
	"github.com/forless-ai/forless-backend/internal/projects"
	projectshttp "github.com/forless-ai/forless-backend/internal/projects/http"
	"github.com/forless-ai/forless-backend/internal/publish"
	publishhttp "github.com/forless-ai/forless-backend/internal/publish/http"
	"github.com/forless-ai/forless-backend/internal/sites"
	siteshttp "github.com/forless-ai/forless-backend/internal/sites/http"
	"github.com/forless-ai/forless-backend/internal/unsplash"
	"github.com/forless-ai/forless-backend/internal/users"
	"github.com/forless-ai/forless-backend/internal/websites"
	websiteshttp "github.com/forless-ai/forless-backend/internal/websites/http"
)

type RouterDeps struct {
	Cfg   *config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	// Auth may be nil in development; identity then comes from headers.
	Auth *fbauth.Client
	Log  zerolog.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestID(dep.Log))
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.Cfg.App.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(dep.DB)
	projectRepo := projects.NewRepo(dep.DB)
	websiteRepo := websites.NewRepo(dep.DB)
	publishRepo := publish.NewRepo(dep.DB)
	siteRepo := sites.NewRepo(dep.DB)
	adminRepo := adminrepo.NewRepo(dep.DB)

	var siteCache *sites.Cache
	if dep.Redis != nil {
		siteCache = sites.NewCache(dep.Redis)
	}

	// Publish manager; the cache interface stays nil without Redis.
	var invalidator publish.Invalidator
	if siteCache != nil {
		invalidator = siteCache
	}
	manager := publish.NewManager(publishRepo, invalidator, publish.Config{
		DevWildcardHost: dep.Cfg.Domains.DevWildcardHost,
		DevPort:         dep.Cfg.Domains.DevPort,
	}, dep.Log)

	// Public tenant sites; the hostname rewriter lands here.
	siteService := sites.NewService(siteRepo, siteCache, dep.Log)
	siteshttp.New(siteService).Register(r)

	api := r.Group("/api/v1")
	if dep.Auth != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.Auth))
	}
	api.Use(auth.WithUser(userRepo))

	userRepo.RegisterMe(api)

	projectsGroup := api.Group("/projects")
	projectshttp.New(projectRepo).Register(projectsGroup)
	websiteshttp.New(projectRepo, websiteRepo).Register(projectsGroup)
	publishhttp.New(manager).Register(projectsGroup)

	llm := generation.NewClient(dep.Cfg.OpenAI.APIKey, dep.Cfg.OpenAI.Model)
	genService := generation.NewService(llm, projectRepo, websiteRepo,
		dep.Cfg.OpenAI.RateLimit, dep.Cfg.OpenAI.RateBurst, dep.Log)
	generationhttp.New(genService).Register(api)

	unsplash.NewClient(dep.Cfg.Unsplash.AccessKey).Register(api)

	adminGroup := api.Group("/admin")
	adminGroup.Use(auth.RequireAdmin())
	adminhttp.New(adminRepo, manager).Register(adminGroup)

	return r
}
