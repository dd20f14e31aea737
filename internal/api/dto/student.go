package dto

import (
	"context"
	"time"

	"github.com/nexonoperations/tutorbill/internal/domain/student"
	"github.com/nexonoperations/tutorbill/internal/types"
	"github.com/nexonoperations/tutorbill/internal/validator"
)

type CreateStudentRequest struct {
	Name        string `json:"name" binding:"required" validate:"required"`
	Grade       string `json:"grade" binding:"required" validate:"required"`
	ParentEmail string `json:"parent_email" binding:"required,email" validate:"required,email"`
}

func (r *CreateStudentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateStudentRequest) ToStudent(ctx context.Context) *student.Student {
	now := time.Now().UTC()
	return &student.Student{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixStudent),
		Name:        r.Name,
		Grade:       r.Grade,
		ParentEmail: r.ParentEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type UpdateStudentRequest struct {
	Name        *string `json:"name,omitempty"`
	Grade       *string `json:"grade,omitempty"`
	ParentEmail *string `json:"parent_email,omitempty" validate:"omitempty,email"`
}

func (r *UpdateStudentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type StudentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Grade       string `json:"grade"`
	ParentEmail string `json:"parent_email"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// NewStudentResponse converts a Student domain object into a StudentResponse DTO.
func NewStudentResponse(s *student.Student) *StudentResponse {
	return &StudentResponse{
		ID:          s.ID,
		Name:        s.Name,
		Grade:       s.Grade,
		ParentEmail: s.ParentEmail,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

type ListStudentsResponse struct {
	Items []*StudentResponse `json:"items"`
	Total int                `json:"total"`
}
