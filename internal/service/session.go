package service

import (
	"context"

	"github.com/nexonoperations/tutorbill/internal/api/dto"
	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/samber/lo"
)

type SessionService interface {
	CreateSession(ctx context.Context, studentID string, req dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, studentID, id string) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context, studentID string) (*dto.ListSessionsResponse, error)
	DeleteSession(ctx context.Context, studentID, id string) error
}

type sessionService struct {
	ServiceParams
}

func NewSessionService(params ServiceParams) SessionService {
	return &sessionService{
		ServiceParams: params,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, studentID string, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The student must exist before sessions can be logged against it.
	if _, err := s.StudentRepo.Get(ctx, studentID); err != nil {
		return nil, err
	}

	sess := req.ToSession(ctx, studentID)
	if err := s.SessionRepo.Upsert(ctx, sess); err != nil {
		return nil, err
	}

	s.Logger.Infow("recorded session",
		"session_id", sess.ID,
		"student_id", studentID,
		"subject", sess.Subject)
	return dto.NewSessionResponse(sess), nil
}

func (s *sessionService) GetSession(ctx context.Context, studentID, id string) (*dto.SessionResponse, error) {
	sess, err := s.SessionRepo.Get(ctx, studentID, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSessionResponse(sess), nil
}

func (s *sessionService) ListSessions(ctx context.Context, studentID string) (*dto.ListSessionsResponse, error) {
	if _, err := s.StudentRepo.Get(ctx, studentID); err != nil {
		return nil, err
	}

	sessions, err := s.SessionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	items := lo.Map(sessions, func(sess *session.Session, _ int) *dto.SessionResponse {
		return dto.NewSessionResponse(sess)
	})

	return &dto.ListSessionsResponse{
		Items: items,
		Total: len(items),
	}, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, studentID, id string) error {
	if _, err := s.SessionRepo.Get(ctx, studentID, id); err != nil {
		return err
	}
	return s.SessionRepo.Delete(ctx, studentID, id)
}
