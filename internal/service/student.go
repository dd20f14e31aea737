package service

import (
	"context"
	"time"

	"github.com/nexonoperations/tutorbill/internal/api/dto"
	"github.com/nexonoperations/tutorbill/internal/domain/student"
	"github.com/samber/lo"
)

type StudentService interface {
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error)
	ListStudents(ctx context.Context) (*dto.ListStudentsResponse, error)
	UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, id string) error
}

type studentService struct {
	ServiceParams
}

func NewStudentService(params ServiceParams) StudentService {
	return &studentService{
		ServiceParams: params,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stu := req.ToStudent(ctx)
	if err := s.StudentRepo.Upsert(ctx, stu); err != nil {
		return nil, err
	}

	s.Logger.Infow("created student", "student_id", stu.ID, "name", stu.Name)
	return dto.NewStudentResponse(stu), nil
}

func (s *studentService) GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error) {
	stu, err := s.StudentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponse(stu), nil
}

func (s *studentService) ListStudents(ctx context.Context) (*dto.ListStudentsResponse, error) {
	students, err := s.StudentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(students, func(stu *student.Student, _ int) *dto.StudentResponse {
		return dto.NewStudentResponse(stu)
	})

	return &dto.ListStudentsResponse{
		Items: items,
		Total: len(items),
	}, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stu, err := s.StudentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		stu.Name = *req.Name
	}
	if req.Grade != nil {
		stu.Grade = *req.Grade
	}
	if req.ParentEmail != nil {
		stu.ParentEmail = *req.ParentEmail
	}
	stu.UpdatedAt = time.Now().UTC()

	if err := s.StudentRepo.Upsert(ctx, stu); err != nil {
		return nil, err
	}

	return dto.NewStudentResponse(stu), nil
}

func (s *studentService) DeleteStudent(ctx context.Context, id string) error {
	if _, err := s.StudentRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.StudentRepo.Delete(ctx, id)
}
