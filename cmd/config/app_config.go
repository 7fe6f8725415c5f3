package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"tmm-backend/internal/api/handlers"
	"tmm-backend/internal/api/routes"
	"tmm-backend/internal/middleware"
	"tmm-backend/internal/utils"
	"tmm-backend/internal/utils/mailing"
	"tmm-backend/internal/utils/storage"
	"tmm-backend/pkg/events"
	"tmm-backend/pkg/jwt"
	"tmm-backend/pkg/menu"
	"tmm-backend/pkg/order"
	"tmm-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// App is the HTTP server plus everything that must be released on shutdown.
type App struct {
	*fiber.App
	closers []io.Closer
}

func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func NewApp(ctx context.Context, db *gorm.DB) (*App, error) {
	utils.InitValidator()
	validator := utils.Validate

	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	location, err := time.LoadLocation(utils.GetConfig("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	maxProof := int64(utils.GetInt("ORDER_MAX_PROOF_BYTES"))
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         int(maxProof) + 1<<20,
	})
	out := &App{App: app}
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ALLOW_ORIGINS"))

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	out.closers = append(out.closers, file)
	fail := func(err error) (*App, error) {
		_ = out.Close()
		return nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfig("TIMEZONE"),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetInt("RATE_LIMIT_PER_SECOND"),
		Expiration: 1 * time.Second,
	}))

	// utils
	blobStore, err := storage.NewFromConfig(ctx)
	if err != nil {
		return fail(err)
	}

	var notifiers []order.Notifier
	if brokers := utils.GetStrings("KAFKA_BROKERS"); len(brokers) > 0 {
		producer, err := events.NewSyncProducer(brokers)
		if err != nil {
			return fail(err)
		}
		publisher := events.NewPublisher(producer, utils.GetConfig("KAFKA_TOPIC"))
		out.closers = append(out.closers, publisher)
		notifiers = append(notifiers, publisher)
	} else {
		log.Info("KAFKA_BROKERS not set, order events disabled")
	}
	if mailCfg := mailing.LoadMailConfig(); mailCfg.Enabled() {
		dialer, err := mailing.NewDialer(mailCfg)
		if err != nil {
			return fail(err)
		}
		notifiers = append(notifiers, mailing.NewStatusMailer(mailCfg, dialer))
	} else {
		log.Info("SMTP not configured, status e-mails disabled")
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	orderRepository := order.NewOrderRepository(db)

	// Service
	sessionTTL := time.Duration(utils.GetInt("SESSION_TTL_HOURS")) * time.Hour
	jwtService := jwt.NewJWTService(secret, sessionTTL)
	userService := user.NewUserService(userRepository, jwtService)
	menuService := menu.NewMenuService(menuRepository)
	orderService := order.NewOrderService(
		orderRepository,
		blobStore,
		validator,
		order.SubmissionPolicy{
			RequireProof:    utils.GetBool("ORDER_REQUIRE_PAYMENT_PROOF"),
			FailOnBlobError: utils.GetConfig("ORDER_PROOF_FAILURE_POLICY") == "fail",
			MaxProofBytes:   maxProof,
		},
		order.WithLocation(location),
		order.WithNotifier(order.NewMultiNotifier(notifiers...)),
	)

	// Handler
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, maxProof)
	authHandler := handlers.NewAuthHandler(userService, validator, sessionTTL, utils.GetBool("COOKIE_SECURE"))

	// routes
	routesConfig := routes.Config{
		App:          app,
		MenuHandler:  menuHandler,
		OrderHandler: orderHandler,
		AuthHandler:  authHandler,
		Middleware:   middlewares,
		Sessions:     userService,
	}
	if utils.GetConfig("STORAGE_DRIVER") == "local" {
		routesConfig.UploadDir = utils.GetConfig("UPLOAD_DIR")
		routesConfig.UploadPath = utils.GetConfig("PUBLIC_UPLOAD_PATH")
	}
	routesConfig.Setup()
	return out, nil
}
