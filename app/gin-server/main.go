package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/careerlens/careerlens/config"
	"github.com/careerlens/careerlens/internal/api/handlers"
	"github.com/careerlens/careerlens/internal/api/middleware"
	"github.com/careerlens/careerlens/internal/api/routes"
	"github.com/careerlens/careerlens/internal/cache"
	"github.com/careerlens/careerlens/internal/logger"
	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/providers/llm"
	pgrepo "github.com/careerlens/careerlens/internal/repositories/postgres"
	"github.com/careerlens/careerlens/internal/services"
	"github.com/careerlens/careerlens/internal/storage"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	lg := logger.New()
	cfg := config.LoadApp()

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	lg.Info("PostgreSQL connected")

	db := config.PostgresDB
	if err := db.AutoMigrate(&models.StrengthProfile{}, &models.CareerInterest{}, &models.UploadedDocument{}, &models.AIAnalysis{}, &models.Submission{}); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	// The two parallel skill tables share one row shape.
	if err := db.Table("technical_skills").AutoMigrate(&models.SkillEntry{}); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	if err := db.Table("soft_skills").AutoMigrate(&models.SkillEntry{}); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	lg.Info("Redis connected")

	// Blob storage
	store, err := storage.NewGCSStore(ctx, cfg.GCSBucket)
	if err != nil {
		log.Fatalf("GCS init error: %v", err)
	}
	defer store.Close()

	// Language model
	provider, err := llm.NewVertexGemini(ctx, cfg.VertexProjectID, cfg.VertexLocation, cfg.VertexModel)
	if err != nil {
		log.Fatalf("Vertex init error: %v", err)
	}
	defer provider.Close()

	// Repositories
	profileRepo := pgrepo.NewStrengthProfileRepo(db)
	documentRepo := pgrepo.NewDocumentRepo(db)
	analysisRepo := pgrepo.NewAnalysisRepo(db)
	submissionRepo := pgrepo.NewSubmissionRepo(db)

	// Services
	profileSvc := services.NewProfileService(profileRepo, documentRepo, cfg.SkillCap)
	documentSvc := services.NewDocumentService(documentRepo, store, cfg.MaxUploadBytes)
	requester := services.NewAnalysisRequester(profileRepo, provider, cfg.AnalysisTimeout)
	analysisStore := services.NewAnalysisStore(analysisRepo, cache.NewRedisCache(config.RedisClient), cfg.AnalysisCacheTTL)
	submissionSvc := services.NewSubmissionService(submissionRepo, profileSvc, documentSvc, requester, analysisStore, lg)

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(lg))

	routes.RegisterRoutes(r, routes.Deps{
		Discovery: handlers.NewDiscoveryHandler(submissionSvc),
		Profile:   handlers.NewProfileHandler(profileSvc, store, cfg.SignedURLTTL),
		Analysis:  handlers.NewAnalysisHandler(analysisStore, submissionSvc),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
