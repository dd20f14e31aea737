package service

import (
	"testing"

	"github.com/nexonoperations/tutorbill/internal/api/dto"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type StudentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service StudentService
}

func TestStudentService(t *testing.T) {
	suite.Run(t, new(StudentServiceSuite))
}

func (s *StudentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.service = NewStudentService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		StudentRepo: stores.StudentRepo,
		SessionRepo: stores.SessionRepo,
	})
}

func (s *StudentServiceSuite) TestCreateStudent() {
	resp, err := s.service.CreateStudent(s.GetContext(), dto.CreateStudentRequest{
		Name:        "Jan van der Merwe",
		Grade:       "Graad 10",
		ParentEmail: "ouers@example.com",
	})
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Contains(resp.ID, "stu_")
	s.Equal("Jan van der Merwe", resp.Name)

	got, err := s.service.GetStudent(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal(resp.ID, got.ID)
}

func (s *StudentServiceSuite) TestCreateStudentValidation() {
	_, err := s.service.CreateStudent(s.GetContext(), dto.CreateStudentRequest{
		Name:        "Jan",
		Grade:       "Graad 10",
		ParentEmail: "not-an-email",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *StudentServiceSuite) TestUpdateStudent() {
	created, err := s.service.CreateStudent(s.GetContext(), dto.CreateStudentRequest{
		Name:        "Jan van der Merwe",
		Grade:       "Graad 10",
		ParentEmail: "ouers@example.com",
	})
	s.NoError(err)

	updated, err := s.service.UpdateStudent(s.GetContext(), created.ID, dto.UpdateStudentRequest{
		Grade: lo.ToPtr("Graad 11"),
	})
	s.NoError(err)
	s.Equal("Graad 11", updated.Grade)
	s.Equal(created.Name, updated.Name)
}

func (s *StudentServiceSuite) TestGetStudentNotFound() {
	_, err := s.service.GetStudent(s.GetContext(), "stu_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *StudentServiceSuite) TestDeleteStudent() {
	created, err := s.service.CreateStudent(s.GetContext(), dto.CreateStudentRequest{
		Name:        "Jan van der Merwe",
		Grade:       "Graad 10",
		ParentEmail: "ouers@example.com",
	})
	s.NoError(err)

	s.NoError(s.service.DeleteStudent(s.GetContext(), created.ID))

	_, err = s.service.GetStudent(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *StudentServiceSuite) TestListStudents() {
	for _, name := range []string{"Jan van der Merwe", "Annelie Smit"} {
		_, err := s.service.CreateStudent(s.GetContext(), dto.CreateStudentRequest{
			Name:        name,
			Grade:       "Graad 10",
			ParentEmail: "ouers@example.com",
		})
		s.NoError(err)
	}

	resp, err := s.service.ListStudents(s.GetContext())
	s.NoError(err)
	s.Equal(2, resp.Total)
}
