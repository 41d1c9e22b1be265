// Package archive stores generated artifacts in S3 and hands back
// time-limited download links.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fpang/prompt-gallery/internal/metrics"
)

// Kind groups archived objects by what produced them.
type Kind string

const (
	KindImage Kind = "images"
	KindVideo Kind = "videos"
)

// DefaultURLTTL is the lifetime of a presigned download link.
const DefaultURLTTL = time.Hour

// projectTagging is the URL-encoded object tagging string for cost allocation.
const projectTagging = "Project=prompt-gallery"

// ErrDisabled is returned when no bucket is configured.
var ErrDisabled = errors.New("artifact archive is not configured")

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Presigner is the subset of the S3 presign client used for download links.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Saved describes an archived object.
type Saved struct {
	Key     string    `json:"key"`
	URL     string    `json:"url"`
	Expires time.Time `json:"expires"`
}

// Archive writes artifacts under generated/<kind>/<id>.<ext>.
type Archive struct {
	client    ObjectPutter
	presigner Presigner
	bucket    string
	ttl       time.Duration
	newID     func() string
	now       func() time.Time
}

// New creates an Archive for bucket. A zero ttl uses DefaultURLTTL.
func New(client ObjectPutter, presigner Presigner, bucket string, ttl time.Duration) *Archive {
	if ttl <= 0 {
		ttl = DefaultURLTTL
	}
	return &Archive{
		client:    client,
		presigner: presigner,
		bucket:    bucket,
		ttl:       ttl,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// NewFromS3 wires an Archive to a real S3 client.
func NewFromS3(client *s3.Client, bucket string, ttl time.Duration) *Archive {
	return New(client, s3.NewPresignClient(client), bucket, ttl)
}

// Enabled reports whether the archive can store objects. A nil Archive is disabled.
func (a *Archive) Enabled() bool {
	return a != nil && a.bucket != ""
}

// Save uploads data and returns a presigned GET link to it.
func (a *Archive) Save(ctx context.Context, kind Kind, data []byte, mimeType string) (Saved, error) {
	if !a.Enabled() {
		return Saved{}, ErrDisabled
	}
	if len(data) == 0 {
		return Saved{}, errors.New("refusing to archive empty artifact")
	}

	key := fmt.Sprintf("generated/%s/%s%s", kind, a.newID(), Extension(mimeType))
	start := time.Now()
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
		Tagging:     aws.String(projectTagging),
	})
	if err != nil {
		return Saved{}, fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}

	req, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = a.ttl
	})
	if err != nil {
		return Saved{}, fmt.Errorf("presign GetObject: %w", err)
	}

	metrics.New("archive").
		Dimension("Kind", string(kind)).
		Latency("ArchiveUploadMs", time.Since(start)).
		Metric("ArchiveBytes", float64(len(data)), metrics.UnitBytes).
		Flush()

	log.Info().
		Str("bucket", a.bucket).
		Str("key", key).
		Int("bytes", len(data)).
		Msg("Artifact archived to S3")
	return Saved{Key: key, URL: req.URL, Expires: a.now().Add(a.ttl).UTC()}, nil
}

// Extension maps a MIME type to the file extension used in object keys.
func Extension(mimeType string) string {
	mimeType, _, _ = strings.Cut(strings.ToLower(mimeType), ";")
	switch strings.TrimSpace(mimeType) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	default:
		return ".bin"
	}
}
