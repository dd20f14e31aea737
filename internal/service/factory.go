package service

import (
	"github.com/nexonoperations/tutorbill/internal/config"
	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/nexonoperations/tutorbill/internal/domain/student"
	"github.com/nexonoperations/tutorbill/internal/email"
	"github.com/nexonoperations/tutorbill/internal/logger"
	"github.com/nexonoperations/tutorbill/internal/pdf"
	"github.com/nexonoperations/tutorbill/internal/s3"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	PDFGenerator pdf.Generator
	S3           s3.Service
	EmailSender  email.Sender

	// Repositories
	StudentRepo student.Repository
	SessionRepo session.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	pdfGenerator pdf.Generator,
	s3Service s3.Service,
	emailSender email.Sender,
	studentRepo student.Repository,
	sessionRepo session.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		PDFGenerator: pdfGenerator,
		S3:           s3Service,
		EmailSender:  emailSender,
		StudentRepo:  studentRepo,
		SessionRepo:  sessionRepo,
	}
}
