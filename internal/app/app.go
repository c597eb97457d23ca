package app

import (
	"campuslearn_backend/internal/config"
	"campuslearn_backend/internal/controller"
	"campuslearn_backend/internal/repository"
	"campuslearn_backend/internal/service"
	"campuslearn_backend/internal/util"
	"campuslearn_backend/pkg/database"
	"campuslearn_backend/pkg/logger"
	"campuslearn_backend/pkg/monitoring"
	"campuslearn_backend/pkg/security"
	"campuslearn_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Live   *config.Live
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user         *repository.UserRepository
	course       *repository.CourseRepository
	enrollment   *repository.EnrollmentRepository
	topic        *repository.TopicRepository
	notification *repository.NotificationRepository
	quiz         *repository.QuizRepository
	assignment   *repository.AssignmentRepository
}

type services struct {
	auth         *service.AuthService
	storage      *service.StorageService
	user         *service.UserService
	course       *service.CourseService
	enrollment   *service.EnrollmentService
	topic        *service.TopicService
	notification *service.NotificationService
	quiz         *service.QuizService
	assignment   *service.AssignmentService
	ai           *service.AIService
	flow         *service.FlowService
	analytics    *service.AnalyticsService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	course       *controller.CourseController
	topic        *controller.TopicController
	notification *controller.NotificationController
	quiz         *controller.QuizController
	assignment   *controller.AssignmentController
	ai           *controller.AIController
	analytics    *controller.AnalyticsController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		enrollment:   repository.NewEnrollmentRepository(db),
		topic:        repository.NewTopicRepository(db),
		notification: repository.NewNotificationRepository(db),
		quiz:         repository.NewQuizRepository(db),
		assignment:   repository.NewAssignmentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, a.Live)
	s.user = service.NewUserService(repos.user, s.storage)
	s.course = service.NewCourseService(repos.course, s.storage)
	s.enrollment = service.NewEnrollmentService(repos.enrollment)
	s.notification = service.NewNotificationService(repos.notification, rdb)
	s.topic = service.NewTopicService(repos.topic, repos.course, s.notification)
	s.quiz = service.NewQuizService(repos.quiz)
	s.assignment = service.NewAssignmentService(repos.assignment, s.notification)
	s.ai = service.NewAIService(cfg.AI)
	s.flow = service.NewFlowService(s.ai, repos.topic)
	s.analytics = service.NewAnalyticsService(repos.user, repos.course, repos.topic, repos.assignment)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		course:       controller.NewCourseController(s.course, s.enrollment),
		topic:        controller.NewTopicController(s.topic, s.auth, s.storage),
		notification: controller.NewNotificationController(s.notification),
		quiz:         controller.NewQuizController(s.quiz),
		assignment:   controller.NewAssignmentController(s.assignment, s.auth),
		ai:           controller.NewAIController(s.flow),
		analytics:    controller.NewAnalyticsController(s.analytics),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests == 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window == 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis is a cache here, not a hard dependency.
		logger.Log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		Live:   config.NewLive(cfg),
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("campuslearn", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
