package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hqdat/examhub/config"
	"github.com/hqdat/examhub/database"
	_ "github.com/hqdat/examhub/docs" // Swagger docs - auto-generated
	adminctrl "github.com/hqdat/examhub/internal/controller/admin"
	authctrl "github.com/hqdat/examhub/internal/controller/auth"
	userctrl "github.com/hqdat/examhub/internal/controller/user"
	"github.com/hqdat/examhub/internal/logger"
	"github.com/hqdat/examhub/internal/middleware"
	"github.com/hqdat/examhub/internal/model"
	"github.com/hqdat/examhub/internal/repository"
	"github.com/hqdat/examhub/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Online Exam Platform API
// @version 1.0
// @description Backend for authoring exams, taking them once, and auditing scored results.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewQuestionRepository,
			repository.NewExamRepository,
			repository.NewResultRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewSubmissionService,
			service.NewListingService,
			service.NewStatisticsService,
			service.NewResultService,
			service.NewExamService,
			service.NewQuestionService,
			service.NewUserService,
			service.NewAuthService,
		),

		// API Controllers Layer
		fx.Provide(
			authctrl.NewAuthController,
			userctrl.NewExamController,
			adminctrl.NewQuestionController,
			adminctrl.NewExamController,
			adminctrl.NewUserController,
			adminctrl.NewStatisticsController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *authctrl.AuthController,
	examCtrl *userctrl.ExamController,
	adminQuestionCtrl *adminctrl.QuestionController,
	adminExamCtrl *adminctrl.ExamController,
	adminUserCtrl *adminctrl.UserController,
	adminStatsCtrl *adminctrl.StatisticsController,
) {
	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authCtrl.Signup)
		authGroup.POST("/login", authCtrl.Login)
	}

	// Student routes: any authenticated caller
	studentGroup := api.Group("")
	studentGroup.Use(middleware.RequireAuth(cfg))
	{
		studentGroup.GET("/exams", examCtrl.ListExams)
		studentGroup.GET("/exams/:exam_id", examCtrl.GetExam)
		studentGroup.POST("/exams/:exam_id/submissions", examCtrl.SubmitExam)
		studentGroup.GET("/my-results", examCtrl.GetMyResults)
	}

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(cfg), middleware.RequireAdmin())
	{
		adminGroup.GET("/dashboard", adminStatsCtrl.GetDashboard)
		adminGroup.GET("/statistics", adminStatsCtrl.GetStatistics)
		adminGroup.GET("/results", adminStatsCtrl.GetStudentDetail)

		adminGroup.POST("/questions", adminQuestionCtrl.CreateQuestion)
		adminGroup.GET("/questions", adminQuestionCtrl.GetAllQuestions)
		adminGroup.GET("/questions/:question_id", adminQuestionCtrl.GetQuestion)
		adminGroup.PUT("/questions/:question_id", adminQuestionCtrl.UpdateQuestion)
		adminGroup.DELETE("/questions/:question_id", adminQuestionCtrl.DeleteQuestion)

		adminGroup.POST("/exams", adminExamCtrl.CreateExam)
		adminGroup.GET("/exams", adminExamCtrl.GetAllExams)
		adminGroup.GET("/exams/:exam_id", adminExamCtrl.GetExam)
		adminGroup.PUT("/exams/:exam_id", adminExamCtrl.UpdateExam)
		adminGroup.DELETE("/exams/:exam_id", adminExamCtrl.DeleteExam)

		adminGroup.POST("/users", adminUserCtrl.CreateUser)
		adminGroup.GET("/users", adminUserCtrl.GetAllUsers)
		adminGroup.GET("/users/:user_id", adminUserCtrl.GetUser)
		adminGroup.PUT("/users/:user_id", adminUserCtrl.UpdateUser)
		adminGroup.DELETE("/users/:user_id", adminUserCtrl.DeleteUser)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam platform API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Exam{},
		&model.ExamQuestion{},
		&model.Result{},
		&model.ResultAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
