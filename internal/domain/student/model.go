package student

import "time"

// Student represents the student domain model. It is owned by the document
// store and treated as a read-only record for the duration of one invoice
// computation.
type Student struct {
	ID          string    `json:"id" dynamodbav:"id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Grade       string    `json:"grade" dynamodbav:"grade"`
	ParentEmail string    `json:"parent_email" dynamodbav:"parent_email"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updated_at"`
}
