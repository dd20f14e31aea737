package service

import (
	"testing"
	"time"

	"github.com/nexonoperations/tutorbill/internal/api/dto"
	"github.com/nexonoperations/tutorbill/internal/domain/student"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/testutil"
	"github.com/nexonoperations/tutorbill/internal/types"
	"github.com/stretchr/testify/suite"
)

type SessionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SessionService
	student *student.Student
}

func TestSessionService(t *testing.T) {
	suite.Run(t, new(SessionServiceSuite))
}

func (s *SessionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.service = NewSessionService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		StudentRepo: stores.StudentRepo,
		SessionRepo: stores.SessionRepo,
	})

	s.student = &student.Student{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixStudent),
		Name:        "Jan van der Merwe",
		Grade:       "Graad 10",
		ParentEmail: "ouers@example.com",
	}
	s.NoError(stores.StudentRepo.Upsert(s.GetContext(), s.student))
}

func (s *SessionServiceSuite) TestCreateSession() {
	resp, err := s.service.CreateSession(s.GetContext(), s.student.ID, dto.CreateSessionRequest{
		Subject: "Wiskunde",
		Mode:    "Individual",
		Hours:   1.5,
		Date:    time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	s.Contains(resp.ID, "ses_")
	s.Equal(s.student.ID, resp.StudentID)
	s.Equal("individual", resp.Mode)
	s.False(resp.Sent)
}

func (s *SessionServiceSuite) TestCreateSessionDefaultsToGroup() {
	resp, err := s.service.CreateSession(s.GetContext(), s.student.ID, dto.CreateSessionRequest{
		Subject: "Wiskunde",
		Mode:    "paired",
		Hours:   1.0,
		Date:    time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	s.Equal("group", resp.Mode)
}

func (s *SessionServiceSuite) TestCreateSessionUnknownStudent() {
	_, err := s.service.CreateSession(s.GetContext(), "stu_missing", dto.CreateSessionRequest{
		Subject: "Wiskunde",
		Hours:   1.0,
		Date:    time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *SessionServiceSuite) TestCreateSessionWithoutHours() {
	// hours may be absent; the record is stored but never billed
	resp, err := s.service.CreateSession(s.GetContext(), s.student.ID, dto.CreateSessionRequest{
		Subject: "Afrikaans",
		Mode:    "group",
		Date:    time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	s.Nil(resp.Hours)
}

func (s *SessionServiceSuite) TestListSessions() {
	for _, subject := range []string{"Wiskunde", "Wetenskap"} {
		_, err := s.service.CreateSession(s.GetContext(), s.student.ID, dto.CreateSessionRequest{
			Subject: subject,
			Hours:   1.0,
			Date:    time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC),
		})
		s.NoError(err)
	}

	resp, err := s.service.ListSessions(s.GetContext(), s.student.ID)
	s.NoError(err)
	s.Equal(2, resp.Total)
	s.Equal("Wiskunde", resp.Items[0].Subject)
	s.Equal("Wetenskap", resp.Items[1].Subject)
}

func (s *SessionServiceSuite) TestDeleteSession() {
	created, err := s.service.CreateSession(s.GetContext(), s.student.ID, dto.CreateSessionRequest{
		Subject: "Wiskunde",
		Hours:   1.0,
		Date:    time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC),
	})
	s.NoError(err)

	s.NoError(s.service.DeleteSession(s.GetContext(), s.student.ID, created.ID))

	_, err = s.service.GetSession(s.GetContext(), s.student.ID, created.ID)
	s.True(ierr.IsNotFound(err))
}
