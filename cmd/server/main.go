package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexonoperations/tutorbill/internal/api"
	v1 "github.com/nexonoperations/tutorbill/internal/api/v1"
	"github.com/nexonoperations/tutorbill/internal/config"
	"github.com/nexonoperations/tutorbill/internal/dynamodb"
	"github.com/nexonoperations/tutorbill/internal/email"
	"github.com/nexonoperations/tutorbill/internal/logger"
	"github.com/nexonoperations/tutorbill/internal/pdf"
	"github.com/nexonoperations/tutorbill/internal/repository"
	"github.com/nexonoperations/tutorbill/internal/s3"
	"github.com/nexonoperations/tutorbill/internal/sentry"
	"github.com/nexonoperations/tutorbill/internal/service"
	"github.com/nexonoperations/tutorbill/internal/typst"
	"github.com/nexonoperations/tutorbill/internal/validator"
	"go.uber.org/fx"
)

// @title TutorBill API
// @version 1.0
// @description Tutoring invoice service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Document store
			dynamodb.NewClient,

			// Invoice artifacts
			typst.NewCompiler,
			pdf.NewGenerator,
			s3.NewService,

			// Email delivery
			email.NewEmailClient,
			email.NewEmail,

			// Repositories
			repository.NewStudentRepository,
			repository.NewSessionRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewStudentService,
			service.NewSessionService,
			service.NewInvoiceService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	studentService service.StudentService,
	sessionService service.SessionService,
	invoiceService service.InvoiceService,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(logger),
		Student: v1.NewStudentHandler(studentService, logger),
		Session: v1.NewSessionHandler(sessionService, logger),
		Invoice: v1.NewInvoiceHandler(invoiceService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
