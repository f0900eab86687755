package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectPutter is the slice of the S3 client ImageUploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageUploader stores data-URI images in a bucket and returns their public
// URL.
type ImageUploader struct {
	client  ObjectPutter
	bucket  string
	baseURL string
	now     func() time.Time
}

// NewImageUploader serves objects from baseURL (a CloudFront domain) when
// set, otherwise from the bucket's S3 website address in region.
func NewImageUploader(client ObjectPutter, bucket, baseURL, region string) (*ImageUploader, error) {
	if client == nil || bucket == "" {
		return nil, errors.New("s3: client and bucket are required")
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &ImageUploader{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}, nil
}

// UploadDataURI uploads the decoded image under prefix and returns its URL.
func (u *ImageUploader) UploadDataURI(ctx context.Context, dataURI, prefix string) (string, error) {
	contentType, data, err := ParseDataURI(dataURI)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s-%d%s", prefix, u.now().UnixNano(), extensionFor(contentType))
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}
	return u.baseURL + "/" + key, nil
}
