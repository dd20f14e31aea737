package session

import (
	"time"

	"github.com/nexonoperations/tutorbill/internal/types"
)

// Session represents one tutoring session as stored in the document store.
// Hours stays loosely typed: legacy records hold it as a number, a numeric
// string, or not at all, and the billing aggregator decides what counts.
type Session struct {
	ID        string    `json:"id" dynamodbav:"id"`
	StudentID string    `json:"student_id" dynamodbav:"student_id"`
	Subject   string    `json:"subject" dynamodbav:"subject"`
	Mode      string    `json:"mode" dynamodbav:"mode"`
	Hours     any       `json:"hours,omitempty" dynamodbav:"hours,omitempty"`
	Date      time.Time `json:"date" dynamodbav:"date"`
	Sent      bool      `json:"sent" dynamodbav:"sent"`
}

// BillingMode resolves the session's billing category; anything that is not
// "individual" (case-insensitive) bills at the group rate.
func (s *Session) BillingMode() types.SessionMode {
	return types.ParseSessionMode(s.Mode)
}
