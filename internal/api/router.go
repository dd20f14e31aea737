package api

import (
	"github.com/gin-gonic/gin"
	"github.com/nexonoperations/tutorbill/internal/config"
	"github.com/nexonoperations/tutorbill/internal/logger"
	"github.com/nexonoperations/tutorbill/internal/rest/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	v1 "github.com/nexonoperations/tutorbill/internal/api/v1"
)

type Handlers struct {
	Health  *v1.HealthHandler
	Student *v1.StudentHandler
	Session *v1.SessionHandler
	Invoice *v1.InvoiceHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	students := router.Group("/students")
	{
		students.POST("", handlers.Student.CreateStudent)
		students.GET("", handlers.Student.ListStudents)
		students.GET("/:id", handlers.Student.GetStudent)
		students.PUT("/:id", handlers.Student.UpdateStudent)
		students.DELETE("/:id", handlers.Student.DeleteStudent)

		students.POST("/:id/sessions", handlers.Session.CreateSession)
		students.GET("/:id/sessions", handlers.Session.ListSessions)
		students.GET("/:id/sessions/:session_id", handlers.Session.GetSession)
		students.DELETE("/:id/sessions/:session_id", handlers.Session.DeleteSession)

		students.GET("/:id/invoice", handlers.Invoice.GetInvoiceSummary)
		students.GET("/:id/invoice/preview", handlers.Invoice.PreviewInvoice)
		students.POST("/:id/invoice/send", handlers.Invoice.SendInvoice)
	}

	invoices := router.Group("/invoices")
	{
		invoices.POST("/send", handlers.Invoice.SendBulkInvoices)
	}
}
