package main

import (
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/Chukwwumaemmannuel233/kudora-backend/config"
	"github.com/Chukwwumaemmannuel233/kudora-backend/controllers"
	"github.com/Chukwwumaemmannuel233/kudora-backend/middleware"
	"github.com/Chukwwumaemmannuel233/kudora-backend/repositories"
	"github.com/Chukwwumaemmannuel233/kudora-backend/routes"
	"github.com/Chukwwumaemmannuel233/kudora-backend/services"
)

const (
	smsCodeLimit  = 5
	smsCodeWindow = time.Hour
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis
	redisClient := config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	db := config.GetDatabase(client)

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeaders())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Kudora Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	e.Use(httpsRedirect())

	// Initialize repositories
	buyerRepo := repositories.NewMongoBuyerRepository(db)
	challengeRepo := repositories.NewMongoChallengeRepository(db)
	waitlistRepo := repositories.NewMongoWaitlistRepository(db)
	adminRepo := repositories.NewMongoAdminRepository(db)

	// SMS rate limiting prefers Redis; falls back to in-memory when
	// Redis is unavailable.
	var limiter repositories.CodeAttemptLimiter
	if redisClient != nil {
		limiter = repositories.NewRedisAttemptLimiter(redisClient, smsCodeLimit, smsCodeWindow)
	} else {
		limiter = repositories.NewMemoryAttemptLimiter(smsCodeLimit, smsCodeWindow)
	}

	// Initialize services
	env := os.Getenv("ENV")
	if env == "dev" {
		env = services.EnvDevelopment
	}
	requireCaptcha := os.Getenv("REQUIRE_CAPTCHA") == "true"

	smsSender := services.NewHTTPSMSService()
	emailSender := services.NewSMTPEmailService()
	imageStore := services.NewLocalImageStore()

	registry := services.NewIdentityRegistry(buyerRepo)
	onboarding := services.NewBuyerOnboarding(buyerRepo, registry, requireCaptcha)
	verification := services.NewPhoneVerificationService(challengeRepo, buyerRepo, limiter, smsSender, env)
	intake := services.NewDocumentIntake(buyerRepo, imageStore)
	review := services.NewAdminReviewWorkflow(buyerRepo, challengeRepo, emailSender)
	waitlist := services.NewWaitlistService(waitlistRepo, emailSender, os.Getenv("ADMIN_EMAIL"))

	// Initialize controllers
	buyerController := controllers.NewBuyerController(onboarding, registry)
	verificationController := controllers.NewVerificationController(verification, intake)
	adminController := controllers.NewAdminController(adminRepo, review, verification)
	waitlistController := controllers.NewWaitlistController(waitlist)

	// Register routes
	routes.RegisterBuyerRoutes(e, buyerController, verificationController)
	routes.RegisterWaitlistRoutes(e, waitlistController)

	// Register admin routes AFTER general routes to avoid conflicts
	routes.RegisterAdminRoutes(e, adminController)

	// Ensure uploads directory exists
	os.MkdirAll("uploads", 0755)
	os.MkdirAll("uploads/verification", 0755)

	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

func httpsRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Forwarded-Proto") == "http" {
				return c.Redirect(301, "https://"+c.Request().Host+c.Request().RequestURI)
			}
			return next(c)
		}
	}
}
