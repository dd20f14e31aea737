package dynamo

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nexonoperations/tutorbill/internal/config"
	"github.com/nexonoperations/tutorbill/internal/domain/student"
	"github.com/nexonoperations/tutorbill/internal/dynamodb"
	ierr "github.com/nexonoperations/tutorbill/internal/errors"
	"github.com/nexonoperations/tutorbill/internal/logger"
)

type studentRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *logger.Logger
}

func NewStudentRepository(client *dynamodb.Client, cfg *config.Configuration, logger *logger.Logger) student.Repository {
	return &studentRepository{
		client:    client,
		tableName: cfg.DynamoDB.StudentTableName,
		logger:    logger,
	}
}

func (r *studentRepository) Upsert(ctx context.Context, s *student.Student) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to marshal student").
			Mark(ierr.ErrDatabase)
	}

	_, err = r.client.DB().PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to store student").
			WithReportableDetails(map[string]any{"student_id": s.ID}).
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *studentRepository) Get(ctx context.Context, id string) (*student.Student, error) {
	out, err := r.client.DB().GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get student").
			WithReportableDetails(map[string]any{"student_id": id}).
			Mark(ierr.ErrDatabase)
	}
	if out.Item == nil {
		return nil, ierr.NewErrorf("student not found: %s", id).
			WithHint("student not found").
			Mark(ierr.ErrNotFound)
	}

	var s student.Student
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to unmarshal student").
			Mark(ierr.ErrDatabase)
	}

	return &s, nil
}

func (r *studentRepository) List(ctx context.Context) ([]*student.Student, error) {
	var students []*student.Student

	paginator := awsdynamodb.NewScanPaginator(r.client.DB(), &awsdynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("failed to list students").
				Mark(ierr.ErrDatabase)
		}

		var batch []*student.Student
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, ierr.WithError(err).
				WithHint("failed to unmarshal students").
				Mark(ierr.ErrDatabase)
		}
		students = append(students, batch...)
	}

	return students, nil
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DB().DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to delete student").
			WithReportableDetails(map[string]any{"student_id": id}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}
