package session

import "context"

// Repository defines the interface for session persistence operations
type Repository interface {
	// Upsert creates or replaces a session record
	Upsert(ctx context.Context, session *Session) error

	// Get retrieves a session by owning student and session ID
	Get(ctx context.Context, studentID, id string) (*Session, error)

	// ListByStudent retrieves all sessions for a student, billed or not;
	// filtering on the sent flag is the caller's responsibility
	ListByStudent(ctx context.Context, studentID string) ([]*Session, error)

	// Delete removes a session record
	Delete(ctx context.Context, studentID, id string) error

	// MarkSent flags the given session ids of one student as billed.
	// The update is idempotent and scoped to that student only.
	MarkSent(ctx context.Context, studentID string, sessionIDs []string) error
}
