package dynamo

import (
	"fmt"

	"filevault/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

const (
	emptyAWSSessionToken         = ""
	errFailedCreateAWSSessionFmt = "failed to create AWS session: %w"
)

// Client wraps DynamoDB access against the single metadata table.
type Client struct {
	svc   *dynamodb.DynamoDB
	table string
}

func NewClient(cfg *config.AWSConfig) (*Client, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return &Client{
		svc:   dynamodb.New(sess),
		table: cfg.DynamoTable,
	}, nil
}
