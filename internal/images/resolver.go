// internal/images/resolver.go
// Resolves stable image file keys into serveable URLs. The discovery engine
// treats the result as an opaque string.

package images

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Resolver turns a file key into a URL clients can fetch
type Resolver interface {
	ResolveURL(ctx context.Context, fileKey string) (string, error)
}

// S3Resolver issues time-limited presigned GET URLs for objects in S3
type S3Resolver struct {
	s3Client *s3.S3
	bucket   string
	expiry   time.Duration
}

// NewS3Resolver creates a presigned-URL resolver for the given bucket
func NewS3Resolver(bucket, region string, expiry time.Duration) (*S3Resolver, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Resolver{
		s3Client: s3.New(sess),
		bucket:   bucket,
		expiry:   expiry,
	}, nil
}

// ResolveURL presigns a GET for the object behind fileKey
func (r *S3Resolver) ResolveURL(ctx context.Context, fileKey string) (string, error) {
	req, _ := r.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(fileKey),
	})
	req.SetContext(ctx)

	url, err := req.Presign(r.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", fileKey, err)
	}

	return url, nil
}

// LocalResolver maps file keys onto the static file server, for development
// without S3. URLs are not signed and never expire.
type LocalResolver struct {
	baseURL string
}

// NewLocalResolver creates a resolver serving files from the local uploads dir
func NewLocalResolver(baseURL string) *LocalResolver {
	return &LocalResolver{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// ResolveURL joins the file key onto the static base URL
func (r *LocalResolver) ResolveURL(ctx context.Context, fileKey string) (string, error) {
	return fmt.Sprintf("%s/%s", r.baseURL, strings.TrimPrefix(fileKey, "/")), nil
}
