// Package backup exports the user's notes as markdown objects to an
// S3-compatible bucket.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const contentTypeMarkdown = "text/markdown; charset=utf-8"

// ErrDisabled is returned when no bucket is configured.
var ErrDisabled = errors.New("backup is disabled: no bucket configured (set NOTES_BACKUP_BUCKET)")

// ObjectPutter is the part of the S3 client the exporter uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3Client = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Report lists the object keys written by one export.
type Report struct {
	Bucket   string
	Uploaded []string
	Failed   []string
}

type Exporter struct {
	notes services.NoteService
	cfg   config.Backup
	log   logging.Logger
}

func NewExporter(notes services.NoteService, cfg config.Backup, log logging.Logger) *Exporter {
	if log == nil {
		log = logging.Discard()
	}
	return &Exporter{notes: notes, cfg: cfg, log: log}
}

func (e *Exporter) Enabled() bool {
	return e.cfg.Bucket != ""
}

func (e *Exporter) client(ctx context.Context) (ObjectPutter, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(e.cfg.Region),
	}
	if e.cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(e.cfg.AccessKey, e.cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	return newS3Client(awsCfg, func(o *s3.Options) {
		if e.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(e.cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Export uploads every note as <prefix>/<id>.md. A failed upload does not stop
// the others; their errors are joined into the returned error.
func (e *Exporter) Export(ctx context.Context) (*Report, error) {
	if !e.Enabled() {
		return nil, ErrDisabled
	}

	entries, err := e.notes.List(ctx)
	if err != nil {
		return nil, err
	}

	client, err := e.client(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Bucket: e.cfg.Bucket}
	var errs []error
	for _, entry := range entries {
		if entry.Content == "" {
			full, err := e.notes.Get(ctx, entry.ID)
			if err != nil {
				e.log.Warn(ctx, "failed to load note for backup", "id", entry.ID, "error", err)
				report.Failed = append(report.Failed, entry.ID)
				errs = append(errs, err)
				continue
			}
			entry = *full
		}

		key := ObjectKey(e.cfg.Prefix, entry.ID)
		_, err := client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(e.cfg.Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(Render(entry)),
			ContentType: aws.String(contentTypeMarkdown),
		})
		if err != nil {
			e.log.Warn(ctx, "failed to upload note", "key", key, "error", err)
			report.Failed = append(report.Failed, entry.ID)
			errs = append(errs, fmt.Errorf("upload %s: %w", key, err))
			continue
		}
		e.log.Debug(ctx, "note uploaded", "key", key)
		report.Uploaded = append(report.Uploaded, key)
	}

	e.log.Info(ctx, "backup finished", "bucket", e.cfg.Bucket, "uploaded", len(report.Uploaded), "failed", len(report.Failed))
	return report, errors.Join(errs...)
}

func ObjectKey(prefix, id string) string {
	return path.Join(strings.Trim(prefix, "/"), id+".md")
}

// Render formats a note as markdown with a YAML front matter header.
func Render(e models.Entry) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %s\n", strconv.Quote(e.ID))
	fmt.Fprintf(&b, "title: %s\n", strconv.Quote(e.Title))
	if e.Synopsis != "" {
		fmt.Fprintf(&b, "synopsis: %s\n", strconv.Quote(e.Synopsis))
	}
	if !e.DateCreated.IsZero() {
		fmt.Fprintf(&b, "created: %s\n", e.DateCreated.UTC().Format(time.RFC3339))
	}
	if !e.LastUpdated.IsZero() {
		fmt.Fprintf(&b, "updated: %s\n", e.LastUpdated.UTC().Format(time.RFC3339))
	}
	b.WriteString("---\n\n")
	b.WriteString(e.Content)
	if !strings.HasSuffix(e.Content, "\n") {
		b.WriteString("\n")
	}
	return []byte(b.String())
}
