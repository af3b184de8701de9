package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// AWSEndpoint is the connection shared by the S3 and SQS clients. A non-empty
// Endpoint targets LocalStack and switches to static credentials.
type AWSEndpoint struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

func (e AWSEndpoint) load(ctx context.Context) (aws.Config, error) {
	options := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(e.Region)}
	if e.Endpoint != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(e.AccessKeyID, e.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return cfg, nil
}

func (e AWSEndpoint) baseEndpoint() *string {
	if e.Endpoint == "" {
		return nil
	}
	return aws.String(e.Endpoint)
}

func defaultAWSEndpoint(endpointKey, endpointDefault string) AWSEndpoint {
	return AWSEndpoint{
		Region:          getEnvWithDefault("AWS_REGION", "us-east-1"),
		Endpoint:        getEnvWithDefault(endpointKey, endpointDefault),
		AccessKeyID:     getEnvWithDefault("AWS_ACCESS_KEY_ID", "dummy"),
		SecretAccessKey: getEnvWithDefault("AWS_SECRET_ACCESS_KEY", "dummy"),
	}
}

type S3Config struct {
	AWSEndpoint
	BucketName   string
	BackupPrefix string
}

func DefaultS3Config() *S3Config {
	return &S3Config{
		AWSEndpoint:  defaultAWSEndpoint("AWS_ENDPOINT_URL", ""),
		BucketName:   getEnvWithDefault("S3_BACKUP_BUCKET", "waapify-relay-backups"),
		BackupPrefix: getEnvWithDefault("S3_BACKUP_PREFIX", "installations/"),
	}
}

// GetClient builds an S3 client. Custom endpoints use path-style addressing.
func (c *S3Config) GetClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := c.baseEndpoint(); endpoint != nil {
			o.BaseEndpoint = endpoint
			o.UsePathStyle = true
		}
	}), nil
}

type SQSConfig struct {
	AWSEndpoint
	IndexQueueURL string
	// InboundQueueURL must point at a FIFO queue; message groups keep
	// each gateway instance's events in order.
	InboundQueueURL string
}

func DefaultSQSConfig() *SQSConfig {
	return &SQSConfig{
		AWSEndpoint:     defaultAWSEndpoint("AWS_SQS_ENDPOINT", "http://localhost:4566"),
		IndexQueueURL:   getEnvWithDefault("AWS_SQS_INDEX_QUEUE_URL", "http://localhost:4566/000000000000/message-index-queue"),
		InboundQueueURL: getEnvWithDefault("AWS_SQS_INBOUND_QUEUE_URL", "http://localhost:4566/000000000000/provider-inbound-queue.fifo"),
	}
}

func (c *SQSConfig) GetClient() (*sqs.Client, error) {
	cfg, err := c.load(context.Background())
	if err != nil {
		return nil, err
	}

	return sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		o.BaseEndpoint = c.baseEndpoint()
	}), nil
}
