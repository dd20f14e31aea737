package repository

import (
	"github.com/nexonoperations/tutorbill/internal/config"
	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/nexonoperations/tutorbill/internal/domain/student"
	"github.com/nexonoperations/tutorbill/internal/dynamodb"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/logger"
	dynamoRepo "github.com/nexonoperations/tutorbill/internal/repository/dynamo"
)

// requireClient rejects a missing document-store client at construction time,
// so a misconfigured deployment fails at startup instead of on the first
// request.
func requireClient(client *dynamodb.Client) error {
	if client == nil {
		return ierr.NewError("dynamodb document store is not configured").
			WithHint("set dynamodb.in_use and the student/session table names").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func NewStudentRepository(client *dynamodb.Client, cfg *config.Configuration, logger *logger.Logger) (student.Repository, error) {
	if err := requireClient(client); err != nil {
		return nil, err
	}
	return dynamoRepo.NewStudentRepository(client, cfg, logger), nil
}

func NewSessionRepository(client *dynamodb.Client, cfg *config.Configuration, logger *logger.Logger) (session.Repository, error) {
	if err := requireClient(client); err != nil {
		return nil, err
	}
	return dynamoRepo.NewSessionRepository(client, cfg, logger), nil
}
