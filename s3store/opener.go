package s3store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sagarc03/dataapi"
)

// Config describes how to reach the bucket.
// Region and Bucket are not validated here; a missing value surfaces as a
// KindOther error on the first read.
type Config struct {
	Region          string
	Bucket          string
	Profile         string
	Endpoint        string
	UsePathStyle    bool
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Opener builds a new S3 session for every Open call.
type Opener struct {
	awsCfg  aws.Config
	bucket  string
	options []func(*s3.Options)
	newAPI  func(aws.Config, ...func(*s3.Options)) API
}

// NewOpener resolves the AWS configuration for cfg.
func NewOpener(ctx context.Context, cfg Config) (*Opener, error) {
	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var options []func(*s3.Options)
	if cfg.Endpoint != "" || cfg.UsePathStyle {
		endpoint, pathStyle := cfg.Endpoint, cfg.UsePathStyle
		options = append(options, func(o *s3.Options) {
			if endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
			}
			o.UsePathStyle = pathStyle
		})
	}

	return NewOpenerFromAWSConfig(awsCfg, cfg.Bucket, options...), nil
}

// NewOpenerFromAWSConfig returns an Opener using an already resolved
// aws.Config.
func NewOpenerFromAWSConfig(awsCfg aws.Config, bucket string, options ...func(*s3.Options)) *Opener {
	return &Opener{
		awsCfg:  awsCfg,
		bucket:  bucket,
		options: options,
		newAPI: func(c aws.Config, optFns ...func(*s3.Options)) API {
			return s3.NewFromConfig(c, optFns...)
		},
	}
}

// Open returns a Store backed by a client that is not shared with any other
// Open call.
func (o *Opener) Open(ctx context.Context) (dataapi.ObjectStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return New(o.newAPI(o.awsCfg, o.options...), o.bucket), nil
}

// Bucket returns the bucket read by stores from o.
func (o *Opener) Bucket() string {
	return o.bucket
}

// LoadAWSConfig resolves region, profile and credentials through the default
// AWS chain. The retryer is disabled.
func LoadAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}

	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}

	return awsCfg, nil
}
