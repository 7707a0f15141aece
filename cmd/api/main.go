package main

import (
	"os"

	_ "aquisicoes-backend/api/swagger" // swagger docs
	"aquisicoes-backend/internal/database"
	"aquisicoes-backend/internal/handler"
	"aquisicoes-backend/internal/notify"
	"aquisicoes-backend/internal/repository"
	"aquisicoes-backend/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title           Acquisition Tracking API
// @version         1.0
// @description     API for tracking procurement requests through an approval workflow.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load("configs/.env"); err != nil {
		logger.Info("no configs/.env file found, relying on environment")
	}

	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	dbUser := getenv("DB_USER", "postgres")
	dbPassword := getenv("DB_PASSWORD", "postgres")
	dbName := getenv("DB_NAME", "postgres")
	dbSslMode := getenv("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("connected to PostgreSQL")

	if err := database.SeedDefaultData(db); err != nil {
		logger.Warn("failed to seed default data", zap.Error(err))
	}
	if err := database.SeedAdminUser(db, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		logger.Warn("failed to seed admin user", zap.Error(err))
	}

	notifier := notify.NewEmailNotifier(notify.SMTPConfig{
		Host:     getenv("SMTP_SERVER", "smtp.gmail.com"),
		Port:     getenv("SMTP_PORT", "587"),
		Username: os.Getenv("EMAIL_USER"),
		Password: os.Getenv("EMAIL_PASSWORD"),
		From:     os.Getenv("EMAIL_FROM"),
	}, logger)

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	pendingRepo := repository.NewPendingUserRepository(db)
	acquisitionRepo := repository.NewAcquisitionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	costCenterRepo := repository.NewCostCenterRepository(db)
	reportRepo := repository.NewReportRepository(db)
	txManager := repository.NewTransactionManager(db)

	userService := service.NewUserService(userRepo, pendingRepo, txManager)
	acquisitionService := service.NewAcquisitionService(acquisitionRepo, categoryRepo, costCenterRepo, notifier, logger)
	catalogService := service.NewCatalogService(categoryRepo, costCenterRepo)
	reportService := service.NewReportService(reportRepo, acquisitionRepo)

	userHandler := handler.NewUserHandler(userService)
	acquisitionHandler := handler.NewAcquisitionHandler(acquisitionService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	reportHandler := handler.NewReportHandler(reportService)

	// Set up Gin Router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	acquisitionHandler.RegisterRoutes(router.Group(""))
	catalogHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))

	port := getenv("PORT", "8080")
	logger.Info("server listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
