// internal/profile/upload.go

package profile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// UploadService stores uploaded image files and returns their stable file key.
// URLs are never stored; the image resolver signs keys at read time.
type UploadService interface {
	Store(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error)
	Delete(ctx context.Context, fileKey string) error
}

// LocalUploadService implements local file storage
type LocalUploadService struct {
	uploadDir string
}

// NewLocalUploadService creates a new local upload service
func NewLocalUploadService(uploadDir string) UploadService {
	return &LocalUploadService{uploadDir: uploadDir}
}

// Store writes the file under the upload dir and returns its relative key
func (s *LocalUploadService) Store(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	fullPath := filepath.Join(s.uploadDir, folder)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	key := newFileKey(folder, header.Filename)

	dst, err := os.Create(filepath.Join(s.uploadDir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return key, nil
}

// Delete removes the file behind the key from local storage
func (s *LocalUploadService) Delete(ctx context.Context, fileKey string) error {
	if err := os.Remove(filepath.Join(s.uploadDir, fileKey)); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
	}
	return nil
}

// S3UploadService implements AWS S3 file storage
type S3UploadService struct {
	s3Client *s3.S3
	bucket   string
}

// NewS3UploadService creates a new S3 upload service
func NewS3UploadService(bucket, region string) (UploadService, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3UploadService{
		s3Client: s3.New(sess),
		bucket:   bucket,
	}, nil
}

// Store uploads the file to S3 under a generated key
func (s *S3UploadService) Store(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	key := newFileKey(folder, header.Filename)

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Objects stay private; clients only ever see presigned URLs.
	_, err = s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return key, nil
}

// Delete removes the object behind the key from S3
func (s *S3UploadService) Delete(ctx context.Context, fileKey string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

func newFileKey(folder, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s/%s_%d%s", folder, uuid.New().String(), time.Now().Unix(), ext)
}
