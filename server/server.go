package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dauletq/activity-timeline-backend/config"
	"github.com/dauletq/activity-timeline-backend/docs"
	"github.com/dauletq/activity-timeline-backend/internal/categorizer"
	agentHandler "github.com/dauletq/activity-timeline-backend/internal/handler/agent"
	categoryHandler "github.com/dauletq/activity-timeline-backend/internal/handler/category"
	sampleHandler "github.com/dauletq/activity-timeline-backend/internal/handler/sample"
	timelineHandler "github.com/dauletq/activity-timeline-backend/internal/handler/timeline"
	userHandler "github.com/dauletq/activity-timeline-backend/internal/handler/user"
	"github.com/dauletq/activity-timeline-backend/internal/repository"
	agentService "github.com/dauletq/activity-timeline-backend/internal/service/agent"
	categoryService "github.com/dauletq/activity-timeline-backend/internal/service/category"
	redisService "github.com/dauletq/activity-timeline-backend/internal/service/redis"
	sampleService "github.com/dauletq/activity-timeline-backend/internal/service/sample"
	timelineService "github.com/dauletq/activity-timeline-backend/internal/service/timeline"
	"github.com/dauletq/activity-timeline-backend/internal/service/user"
	"github.com/dauletq/activity-timeline-backend/internal/timeline"
	"github.com/dauletq/activity-timeline-backend/middleware"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterHandler struct {
	userHandler     *userHandler.UserHandler
	agentHandler    *agentHandler.AgentHandler
	sampleHandler   *sampleHandler.SampleHandler
	timelineHandler *timelineHandler.TimelineHandler
	categoryHandler *categoryHandler.CategoryHandler
	agentService    agentService.AgentService
	cache           redisService.ServiceInterface
}

func RunServer(config *config.Config) {
	env := config.Env
	switch env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		log.Println("🚀 Starting server in PRODUCTION mode")
	case "dev", "development":
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode")
	default:
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode (default)")
	}

	fmt.Println("ENVs: ", config.DB.Host, config.DB.DBName, config.DB.User, config.Env)

	db, err := repository.NewRepository(config.DB)
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}
	defer db.Close()

	cache := newCache(config)

	userRepo := repository.NewUserRepository(db)
	agentRepo := repository.NewAgentRepository(db)
	sampleRepo := repository.NewSampleRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	cat := categorizer.NewWithDefaults()

	userSrv := user.NewUserService(userRepo)
	agentSrv := agentService.NewAgentService(agentRepo)
	sampleSrv := sampleService.NewSampleService(sampleRepo, cat, cache)
	categorySrv := categoryService.NewCategoryService(categoryRepo, cat)
	timelineSrv := timelineService.NewTimelineService(sampleRepo, timeline.NewPipeline(pipelineConfig(config)), cache)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := categorySrv.LoadFromStorage(ctx); err != nil {
		log.Printf("⚠️ Failed to load category rules, using defaults: %v", err)
	}
	cancel()

	routerHandler := &RouterHandler{
		userHandler:     userHandler.NewUserHandler(userSrv),
		agentHandler:    agentHandler.NewAgentHandler(agentSrv),
		sampleHandler:   sampleHandler.NewSampleHandler(sampleSrv),
		timelineHandler: timelineHandler.NewTimelineHandler(timelineSrv),
		categoryHandler: categoryHandler.NewCategoryHandler(categorySrv, sampleSrv),
		agentService:    agentSrv,
		cache:           cache,
	}

	r := setupRouter(routerHandler)

	srv := &http.Server{
		Addr:    ":" + config.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("✅ Server starting on port %s", config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	gracefulShutdown(srv)
}

// newCache connects to redis. A nil return disables caching and rate
// limiting rather than failing startup.
func newCache(config *config.Config) redisService.ServiceInterface {
	srv := redisService.NewRedisService(redisService.RedisConfig{
		Host:     config.Redis.Host,
		Port:     config.Redis.Port,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	if srv == nil {
		log.Println("⚠️ Redis unavailable, running without cache")
		return nil
	}
	return srv
}

func pipelineConfig(config *config.Config) timeline.Config {
	cfg := timeline.DefaultConfig()
	if config.Pipeline.BucketMinutes > 0 {
		cfg.BucketMinutes = config.Pipeline.BucketMinutes
	}
	if config.Pipeline.SampleIntervalSeconds > 0 {
		cfg.SampleInterval = time.Duration(config.Pipeline.SampleIntervalSeconds) * time.Second
	}
	if config.Pipeline.TimelineStartHour > 0 {
		cfg.WindowStartHour = config.Pipeline.TimelineStartHour
	}
	if config.Pipeline.TimelineEndHour > 0 {
		cfg.WindowEndHour = config.Pipeline.TimelineEndHour
	}
	if config.Pipeline.TimelineSlotMinutes > 0 {
		cfg.SlotMinutes = config.Pipeline.TimelineSlotMinutes
	}
	return cfg
}

func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("🔄 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	select {
	case <-ctx.Done():
		log.Println("⚠️ Server shutdown timeout exceeded")
	default:
		log.Println("✅ Server gracefully stopped")
	}
}

func setupRouter(routerHandler *RouterHandler) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:")) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-API-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "activity-timeline-backend",
		})
	})

	docs.SwaggerInfo.Host = "127.0.0.1:8080"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	docs.SwaggerInfo.Title = "Activity timeline API"
	docs.SwaggerInfo.Description = "Workstation activity timeline API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api/v1"

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	agentRoutes := r.Group("/api/v1/agent")
	agentRoutes.Use(middleware.APIKeyMiddleware(routerHandler.agentService))
	agentRoutes.Use(middleware.RateLimitMiddleware(routerHandler.cache, 120, time.Minute))
	{
		agentRoutes.POST("/samples", routerHandler.sampleHandler.IngestSamples)
		agentRoutes.POST("/idle", routerHandler.sampleHandler.IngestIdleSamples)
		agentRoutes.GET("/auth", routerHandler.agentHandler.ValidateAPIKey)
	}

	publicAdminRoutes := r.Group("/api/v1/admin")
	{
		publicAdminRoutes.POST("/users/auth", routerHandler.userHandler.CreateOrAuthUserWithPassword)
	}

	privateRoutes := r.Group("/api/v1/admin")
	privateRoutes.Use(middleware.AuthenticationMiddleware())
	{
		privateRoutes.GET("/users/profile", routerHandler.userHandler.GetUserById)

		privateRoutes.GET("/timeline", routerHandler.timelineHandler.GetTimeline)
		privateRoutes.GET("/timeline/workblocks", routerHandler.timelineHandler.GetWorkblocks)
		privateRoutes.GET("/statistics", routerHandler.timelineHandler.GetStatistics)
		privateRoutes.GET("/export", routerHandler.timelineHandler.ExportData)

		privateRoutes.GET("/categories", routerHandler.categoryHandler.GetCategories)
		privateRoutes.PUT("/categories", routerHandler.categoryHandler.UpdateCategories)

		privateRoutes.POST("/agents", routerHandler.agentHandler.CreateAgent)
		privateRoutes.GET("/agents", routerHandler.agentHandler.GetAllAgents)
		privateRoutes.PUT("/agents/:id", routerHandler.agentHandler.UpdateAgent)
		privateRoutes.POST("/agents/:id/regenerate-key", routerHandler.agentHandler.RegenerateAPIKey)
		privateRoutes.DELETE("/agents/:id", routerHandler.agentHandler.DeleteAgent)
	}

	return r
}
