package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/nexonoperations/tutorbill/internal/domain/student"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
)

// InMemoryStudentStore is an in-memory implementation of the student repository
type InMemoryStudentStore struct {
	mu       sync.RWMutex
	students map[string]*student.Student
}

// NewInMemoryStudentStore creates a new instance of InMemoryStudentStore
func NewInMemoryStudentStore() *InMemoryStudentStore {
	return &InMemoryStudentStore{
		students: make(map[string]*student.Student),
	}
}

func copyStudent(s *student.Student) *student.Student {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func (s *InMemoryStudentStore) Upsert(ctx context.Context, stu *student.Student) error {
	if stu == nil {
		return ierr.NewError("student cannot be nil").
			WithHint("student cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.students[stu.ID]; ok {
		stu.CreatedAt = existing.CreatedAt
	} else if stu.CreatedAt.IsZero() {
		stu.CreatedAt = now
	}
	stu.UpdatedAt = now

	s.students[stu.ID] = copyStudent(stu)
	return nil
}

func (s *InMemoryStudentStore) Get(ctx context.Context, id string) (*student.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stu, ok := s.students[id]
	if !ok {
		return nil, ierr.NewErrorf("student not found: %s", id).
			WithHint("student not found").
			Mark(ierr.ErrNotFound)
	}
	return copyStudent(stu), nil
}

func (s *InMemoryStudentStore) List(ctx context.Context) ([]*student.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make([]*student.Student, 0, len(s.students))
	for _, stu := range s.students {
		students = append(students, copyStudent(stu))
	}
	return students, nil
}

func (s *InMemoryStudentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.students, id)
	return nil
}

// Clear removes all students from the store
func (s *InMemoryStudentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = make(map[string]*student.Student)
}
