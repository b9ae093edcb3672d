package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/travelmarket-backend/internal/config"
	"github.com/sefazor/travelmarket-backend/internal/handler"
	"github.com/sefazor/travelmarket-backend/internal/middleware"
	"github.com/sefazor/travelmarket-backend/internal/repository"
	"github.com/sefazor/travelmarket-backend/internal/service"
	"github.com/sefazor/travelmarket-backend/pkg/cache"
	"github.com/sefazor/travelmarket-backend/pkg/database"
	"github.com/sefazor/travelmarket-backend/pkg/email"
	jwtPkg "github.com/sefazor/travelmarket-backend/pkg/jwt"
	"github.com/sefazor/travelmarket-backend/pkg/logger"
	"github.com/sefazor/travelmarket-backend/pkg/payment"
	"github.com/sefazor/travelmarket-backend/pkg/qrcode"
	"github.com/sefazor/travelmarket-backend/pkg/storage"
	"github.com/sefazor/travelmarket-backend/pkg/utils"
)

// Image uploads are capped at 10MB by the package service; leave room for the multipart envelope.
const bodyLimit = 12 * 1024 * 1024

func main() {
	// .env is optional outside local development
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	db, err := database.NewDatabase(cfg.DatabaseURL, !cfg.IsProduction())
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		zlog.Fatal("Failed to migrate database", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		zlog.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	store := cache.NewRedisStore(redisClient, cfg.CheckoutTTL)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// External services
	r2Storage, err := storage.NewCloudflareStorage(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to initialize R2 storage", zap.Error(err))
	}

	sender, err := newEmailSender(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to initialize email sender", zap.Error(err))
	}
	mailer, err := email.NewMailer(sender, cfg.FrontendURL)
	if err != nil {
		zlog.Fatal("Failed to load email templates", zap.Error(err))
	}

	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.Stripe.Currency, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL)
	qrService := qrcode.NewQRService(cfg.FrontendURL)
	tokens := jwtPkg.NewManager(cfg.JWTSecret, cfg.JWTIssuer)

	// Services
	authService := service.NewAuthService(userRepo, tokens, mailer, store, cfg.JWTSecret, zlog)
	userService := service.NewUserService(userRepo, vendorRepo, bookingRepo, reviewRepo)
	packageService := service.NewPackageService(packageRepo, vendorRepo, reviewRepo, r2Storage, cfg.ApprovedVendorsOnly, zlog)
	bookingService := service.NewBookingService(bookingRepo, packageRepo, vendorRepo, userRepo, qrService, mailer, zlog)
	paymentService := service.NewPaymentService(stripeService, store, userRepo, packageRepo, bookingRepo, mailer, zlog)
	reviewService := service.NewReviewService(reviewRepo, bookingRepo, packageRepo)
	vendorService := service.NewVendorService(vendorRepo, packageRepo, bookingRepo)
	adminService := service.NewAdminService(userRepo, profileRepo, vendorRepo, zlog)

	validator := utils.NewValidator()

	routes := &handler.Routes{
		Auth:    handler.NewAuthHandler(authService, validator),
		User:    handler.NewUserHandler(userService, validator),
		Package: handler.NewPackageHandler(packageService, validator),
		Booking: handler.NewBookingHandler(bookingService, reviewService, validator),
		Payment: handler.NewPaymentHandler(paymentService, validator),
		Vendor:  handler.NewVendorHandler(vendorService, bookingService),
		Admin:   handler.NewAdminHandler(adminService, validator),
		Health:  handler.NewHealthHandler(db, zlog),

		Authenticate: middleware.AuthMiddleware(tokens, store, zlog),
		Subjects:     userService,
		Logger:       zlog,
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ErrorHandler: handler.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	routes.Register(app)

	zlog.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func newEmailSender(cfg *config.Config, zlog *zap.Logger) (email.Sender, error) {
	if cfg.Email.Provider == "smtp" {
		return email.NewSMTPSender(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername,
			cfg.Email.SMTPPassword,
			cfg.Email.FromAddress,
			cfg.Email.FromName,
			zlog,
		)
	}
	return email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, zlog), nil
}
