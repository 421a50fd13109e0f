package aws

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// DefaultUploadExpiry is how long a presigned PUT URL stays valid
const DefaultUploadExpiry = time.Hour

// PresignPutObject returns a time-limited URL the client PUTs the file
// bytes to directly, without proxying through this server
func (s *S3Client) PresignPutObject(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := s.Presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      s.Bucket,
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(o *s3.PresignOptions) {
		o.Expires = expires
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign PUT url, %w", err)
	}

	return req.URL, nil
}

// PresignGetObject returns a time-limited download URL for key
func (s *S3Client) PresignGetObject(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := s.Presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = expires
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign GET url, %w", err)
	}

	return req.URL, nil
}

func (s *S3Client) DeleteObject(ctx context.Context, key string) error {
	_, err := s.C.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s, %w", key, err)
	}

	return nil
}

// DeleteObjects removes keys in batches. S3 accepts at most 1000
// identifiers per request
func (s *S3Client) DeleteObjects(ctx context.Context, keys []string) error {
	for start := 0; start < len(keys); start += 1000 {
		end := min(start+1000, len(keys))

		objects := make([]types.ObjectIdentifier, end-start)
		for i, key := range keys[start:end] {
			objects[i] = types.ObjectIdentifier{Key: aws.String(key)}
		}

		_, err := s.C.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: s.Bucket,
			Delete: &types.Delete{
				Objects: objects,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to delete object batch, %w", err)
		}
	}

	return nil
}

// ObjectStream is a live byte stream straight from the storage provider
type ObjectStream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// OpenStream fetches the object so it can be piped through as an HTTP
// response body. The caller owns the stream for the duration of the pipe.
func (s *S3Client) OpenStream(ctx context.Context, key string) (*ObjectStream, error) {
	out, err := s.C.GetObject(ctx, &s3.GetObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s, %w", key, err)
	}

	stream := &ObjectStream{
		Body:          out.Body,
		ContentType:   "application/octet-stream",
		ContentLength: -1,
	}

	if out.ContentType != nil {
		stream.ContentType = *out.ContentType
	}

	if out.ContentLength != nil {
		stream.ContentLength = *out.ContentLength
	}

	return stream, nil
}

// PublicURL builds the canonical object URL. Assumes the bucket allows
// public reads, which isn't checked here
func (s *S3Client) PublicURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, *s.Bucket, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", *s.Bucket, s.region, key)
}
