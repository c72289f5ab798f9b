package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"strings"

	"spacebook/config"
	"spacebook/infras/otel"
	"spacebook/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
	otelAttrSize      = "object_size"
	region            = "auto"
)

// Object is an upload. Body should be seekable (multipart files are) so the
// request can be signed without buffering.
type Object struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
}

// S3 stores public objects in one S3 compatible bucket.
type S3 interface {
	Put(ctx context.Context, object Object) (url string, err error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL is empty for URLs outside the public domain.
	KeyFromURL(url string) (key string)
}

type s3Impl struct {
	client       *s3.Client
	bucket       string
	publicPrefix string
	otel         otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) S3 {
	settings := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			settings.AccessKeyID,
			settings.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if settings.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(settings.APIEndpoint)
		}

		o.UsePathStyle = true
		o.Region = region
	})

	return newS3(client, cfg, ot)
}

func newS3(client *s3.Client, cfg *config.Config, ot otel.Otel) *s3Impl {
	prefix := constant.Empty
	if domain := strings.TrimSuffix(cfg.External.S3.PublicDomain, "/"); domain != "" {
		prefix = domain + "/"
	}

	return &s3Impl{
		client:       client,
		bucket:       cfg.External.S3.BucketName,
		publicPrefix: prefix,
		otel:         ot,
	}
}

func (svc *s3Impl) Put(ctx context.Context, object Object) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Put")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: object.Key,
		otelAttrBucket:    svc.bucket,
		otelAttrSize:      object.Size,
	})

	input := &s3.PutObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(object.Key),
		Body:   object.Body,
	}

	if object.Size > 0 {
		input.ContentLength = aws.Int64(object.Size)
	}

	if object.ContentType != constant.Empty {
		input.ContentType = aws.String(object.ContentType)
	}

	if _, err = svc.client.PutObject(ctx, input); err != nil {
		log.Error().Err(err).Str("key", object.Key).Msg("failed to upload object")

		return constant.Empty, fmt.Errorf("failed to upload object: %w", err)
	}

	return svc.publicPrefix + object.Key, nil
}

func (svc *s3Impl) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete object")

		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

func (svc *s3Impl) KeyFromURL(url string) string {
	if svc.publicPrefix == constant.Empty {
		return constant.Empty
	}

	key, ok := strings.CutPrefix(url, svc.publicPrefix)
	if !ok {
		return constant.Empty
	}

	return key
}
