package terraform

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/yaegashi/tgwops/domain/model"
)

// s3PutAPI is the subset of the S3 client used by S3Sink.
type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads documents to an S3 object, replacing any existing object.
type S3Sink struct {
	Client s3PutAPI
	Bucket string
	Key    string
}

var _ model.DocumentSink = (*S3Sink)(nil)

// NewS3Sink returns a sink for an s3://bucket/key location.
func NewS3Sink(client *s3.Client, location string) (*S3Sink, error) {
	bucket, key, err := ParseS3URL(location)
	if err != nil {
		return nil, err
	}
	return &S3Sink{Client: client, Bucket: bucket, Key: key}, nil
}

// IsS3URL reports whether location names an S3 object.
func IsS3URL(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

// ParseS3URL splits s3://bucket/key into its parts. A key ending in "/"
// gets DefaultOutputPath appended.
func ParseS3URL(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 location %q: %w", location, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid S3 location %q: want s3://bucket/key", location)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" || strings.HasSuffix(key, "/") {
		key += DefaultOutputPath
	}
	return u.Host, key, nil
}

// Write uploads data and returns the s3:// location written.
func (s *S3Sink) Write(ctx context.Context, data []byte) (string, error) {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(s.Bucket),
		Key:         awssdk.String(s.Key),
		Body:        bytes.NewReader(data),
		ContentType: awssdk.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	return "s3://" + s.Bucket + "/" + s.Key, nil
}
