package dynamo

import (
	"context"
	"errors"
	"fmt"

	"filevault/internal/domain/file"
	apperrors "filevault/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

const (
	attrUserID  = "userId"
	attrFileID  = "fileId"
	attrVersion = "version"

	errFailedMarshalRecordFmt   = "failed to marshal file record: %w"
	errFailedUnmarshalRecordFmt = "failed to unmarshal file record: %w"
	errFailedPutRecordFmt       = "failed to put file record: %w"
	errFailedQueryRecordsFmt    = "failed to query file records: %w"
	errFailedGetRecordFmt       = "failed to get file record: %w"
	errFailedUpdateRecordFmt    = "failed to update file record: %w"
	errFailedDeleteRecordFmt    = "failed to delete file record: %w"

	msgRecordNotFound      = "file record not found"
	msgRecordVersionStale  = "file record was modified concurrently"
	queryUserCondition     = "userId = :userId"
	renameUpdateExpression = "SET s3Path = :newS3Path, fileName = :newFileName, #v = :newVersion"
	versionCondition       = "#v = :expectedVersion"
)

// PutRecord writes a full metadata row. The caller is responsible for
// writing the blob first; a failure here leaves an orphaned blob, not a
// dangling record.
func (c *Client) PutRecord(ctx context.Context, record *file.Record) error {
	item, err := dynamodbattribute.MarshalMap(record)
	if err != nil {
		return fmt.Errorf(errFailedMarshalRecordFmt, err)
	}

	_, err = c.svc.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})

	if err != nil {
		return fmt.Errorf(errFailedPutRecordFmt, err)
	}

	return nil
}

// QueryByUser returns every record in the caller's partition.
func (c *Client) QueryByUser(ctx context.Context, userID string) ([]*file.Record, error) {
	result, err := c.svc.QueryWithContext(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		KeyConditionExpression: aws.String(queryUserCondition),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":userId": {S: aws.String(userID)},
		},
	})

	if err != nil {
		return nil, fmt.Errorf(errFailedQueryRecordsFmt, err)
	}

	records := make([]*file.Record, 0, len(result.Items))
	for _, item := range result.Items {
		var record file.Record
		if err := dynamodbattribute.UnmarshalMap(item, &record); err != nil {
			return nil, fmt.Errorf(errFailedUnmarshalRecordFmt, err)
		}
		records = append(records, &record)
	}

	return records, nil
}

// GetRecord fetches one record by its composite key.
func (c *Client) GetRecord(ctx context.Context, userID, fileID string) (*file.Record, error) {
	result, err := c.svc.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key:       recordKey(userID, fileID),
	})

	if err != nil {
		return nil, fmt.Errorf(errFailedGetRecordFmt, err)
	}

	if result.Item == nil {
		return nil, apperrors.NotFound(msgRecordNotFound)
	}

	var record file.Record
	if err := dynamodbattribute.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf(errFailedUnmarshalRecordFmt, err)
	}

	return &record, nil
}

// UpdateRename points a record at its renamed blob. The write is
// conditional on the version the caller read; a stale version surfaces
// as a conflict and the row is untouched.
func (c *Client) UpdateRename(ctx context.Context, input file.RenameInput) error {
	_, err := c.svc.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(c.table),
		Key:                 recordKey(input.UserID, input.FileID),
		UpdateExpression:    aws.String(renameUpdateExpression),
		ConditionExpression: aws.String(versionCondition),
		ExpressionAttributeNames: map[string]*string{
			"#v": aws.String(attrVersion),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":newS3Path":       {S: aws.String(input.NewS3Path)},
			":newFileName":     {S: aws.String(input.NewFileName)},
			":newVersion":      {N: aws.String(fmt.Sprintf("%d", input.ExpectedVersion+1))},
			":expectedVersion": {N: aws.String(fmt.Sprintf("%d", input.ExpectedVersion))},
		},
	})

	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.Conflict(msgRecordVersionStale)
		}
		return fmt.Errorf(errFailedUpdateRecordFmt, err)
	}

	return nil
}

// DeleteRecord removes a record, conditional on the version the caller
// read.
func (c *Client) DeleteRecord(ctx context.Context, input file.DeleteInput) error {
	_, err := c.svc.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(c.table),
		Key:                 recordKey(input.UserID, input.FileID),
		ConditionExpression: aws.String(versionCondition),
		ExpressionAttributeNames: map[string]*string{
			"#v": aws.String(attrVersion),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":expectedVersion": {N: aws.String(fmt.Sprintf("%d", input.ExpectedVersion))},
		},
	})

	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.Conflict(msgRecordVersionStale)
		}
		return fmt.Errorf(errFailedDeleteRecordFmt, err)
	}

	return nil
}

func recordKey(userID, fileID string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		attrUserID: {S: aws.String(userID)},
		attrFileID: {S: aws.String(fileID)},
	}
}

func isConditionalCheckFailed(err error) bool {
	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		return awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
	}
	return false
}
