package dto

import (
	"context"
	"time"

	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/nexonoperations/tutorbill/internal/types"
	"github.com/nexonoperations/tutorbill/internal/validator"
)

// CreateSessionRequest records one tutoring session for a student. Hours is
// intentionally loose: numbers and numeric strings are accepted as-is and the
// billing aggregator decides whether the record is billable.
type CreateSessionRequest struct {
	Subject string    `json:"subject" binding:"required" validate:"required"`
	Mode    string    `json:"mode"`
	Hours   any       `json:"hours"`
	Date    time.Time `json:"date" binding:"required" validate:"required"`
}

func (r *CreateSessionRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateSessionRequest) ToSession(ctx context.Context, studentID string) *session.Session {
	return &session.Session{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixSession),
		StudentID: studentID,
		Subject:   r.Subject,
		Mode:      string(types.ParseSessionMode(r.Mode)),
		Hours:     r.Hours,
		Date:      r.Date,
	}
}

type SessionResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Subject   string    `json:"subject"`
	Mode      string    `json:"mode"`
	Hours     any       `json:"hours,omitempty"`
	Date      time.Time `json:"date"`
	Sent      bool      `json:"sent"`
}

func NewSessionResponse(s *session.Session) *SessionResponse {
	return &SessionResponse{
		ID:        s.ID,
		StudentID: s.StudentID,
		Subject:   s.Subject,
		Mode:      s.Mode,
		Hours:     s.Hours,
		Date:      s.Date,
		Sent:      s.Sent,
	}
}

type ListSessionsResponse struct {
	Items []*SessionResponse `json:"items"`
	Total int                `json:"total"`
}
