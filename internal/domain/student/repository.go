package student

import "context"

// Repository defines the interface for student persistence operations
type Repository interface {
	// Upsert creates or replaces a student record
	Upsert(ctx context.Context, student *Student) error

	// Get retrieves a student by ID
	Get(ctx context.Context, id string) (*Student, error)

	// List retrieves all students
	List(ctx context.Context) ([]*Student, error)

	// Delete removes a student by ID
	Delete(ctx context.Context, id string) error
}
