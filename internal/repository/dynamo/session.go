package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nexonoperations/tutorbill/internal/config"
	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/nexonoperations/tutorbill/internal/dynamodb"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/logger"
)

// sessionRepository stores sessions keyed (student_id, id) so per-student
// lookups and the mark-as-billed update never touch another student's
// records.
type sessionRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *logger.Logger
}

func NewSessionRepository(client *dynamodb.Client, cfg *config.Configuration, logger *logger.Logger) session.Repository {
	return &sessionRepository{
		client:    client,
		tableName: cfg.DynamoDB.SessionTableName,
		logger:    logger,
	}
}

func sessionKey(studentID, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"student_id": &types.AttributeValueMemberS{Value: studentID},
		"id":         &types.AttributeValueMemberS{Value: id},
	}
}

func (r *sessionRepository) Upsert(ctx context.Context, s *session.Session) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to marshal session").
			Mark(ierr.ErrDatabase)
	}

	_, err = r.client.DB().PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to store session").
			WithReportableDetails(map[string]any{"session_id": s.ID}).
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *sessionRepository) Get(ctx context.Context, studentID, id string) (*session.Session, error) {
	out, err := r.client.DB().GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       sessionKey(studentID, id),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get session").
			WithReportableDetails(map[string]any{"session_id": id}).
			Mark(ierr.ErrDatabase)
	}
	if out.Item == nil {
		return nil, ierr.NewErrorf("session not found: %s", id).
			WithHint("session not found").
			Mark(ierr.ErrNotFound)
	}

	var s session.Session
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to unmarshal session").
			Mark(ierr.ErrDatabase)
	}

	return &s, nil
}

func (r *sessionRepository) ListByStudent(ctx context.Context, studentID string) ([]*session.Session, error) {
	var sessions []*session.Session

	paginator := awsdynamodb.NewQueryPaginator(r.client.DB(), &awsdynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("student_id = :student_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":student_id": &types.AttributeValueMemberS{Value: studentID},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("failed to list sessions").
				WithReportableDetails(map[string]any{"student_id": studentID}).
				Mark(ierr.ErrDatabase)
		}

		var batch []*session.Session
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, ierr.WithError(err).
				WithHint("failed to unmarshal sessions").
				Mark(ierr.ErrDatabase)
		}
		sessions = append(sessions, batch...)
	}

	return sessions, nil
}

func (r *sessionRepository) Delete(ctx context.Context, studentID, id string) error {
	_, err := r.client.DB().DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       sessionKey(studentID, id),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to delete session").
			WithReportableDetails(map[string]any{"session_id": id}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// MarkSent sets the sent flag on the given sessions. Setting an already-set
// flag is a no-op, so the update is idempotent.
func (r *sessionRepository) MarkSent(ctx context.Context, studentID string, sessionIDs []string) error {
	for _, id := range sessionIDs {
		_, err := r.client.DB().UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
			TableName:        aws.String(r.tableName),
			Key:              sessionKey(studentID, id),
			UpdateExpression: aws.String("SET sent = :sent"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":sent": &types.AttributeValueMemberBOOL{Value: true},
			},
		})
		if err != nil {
			return ierr.WithError(err).
				WithHint("failed to mark session as billed").
				WithReportableDetails(map[string]any{
					"student_id": studentID,
					"session_id": id,
				}).
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}
