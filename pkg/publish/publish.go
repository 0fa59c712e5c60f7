package publish

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/logging"
)

// Uploader stores a local file under bucket/key.
type Uploader interface {
	Upload(ctx context.Context, path, bucket, key string) (string, error)
}

// Result describes a published file.
type Result struct {
	File   string `json:"file" yaml:"file"`
	URL    string `json:"url" yaml:"url"`
	DryRun bool   `json:"dry_run" yaml:"dry_run"`
}

// Publisher uploads release artifacts
type Publisher struct {
	uploader Uploader
	dryRun   bool
	logger   zerolog.Logger
}

// NewPublisher creates a publisher. uploader may be nil in dry run mode.
func NewPublisher(uploader Uploader, dryRun bool) *Publisher {
	return &Publisher{
		uploader: uploader,
		dryRun:   dryRun,
		logger:   logging.GetLogger("publish"),
	}
}

// Publish uploads file to the location given by target, an s3:// URL. A
// target ending in a slash is a prefix the file name is appended to.
func (p *Publisher) Publish(ctx context.Context, target, file string) (*Result, error) {
	bucket, key, err := ParseURL(target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid publish url %q", target).
			WithDetail("url", target)
	}
	key = ObjectKey(key, filepath.Base(file))

	if p.dryRun {
		p.logger.Info().
			Str("file", file).
			Str("bucket", bucket).
			Str("key", key).
			Msg("Dry run mode - file would be uploaded")
		return &Result{File: file, URL: "s3://" + bucket + "/" + key, DryRun: true}, nil
	}

	if p.uploader == nil {
		return nil, errors.New(errors.ErrInternal, "no uploader configured")
	}

	p.logger.Info().Str("file", file).Str("bucket", bucket).Str("key", key).Msg("Uploading")
	url, err := p.uploader.Upload(ctx, file, bucket, key)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPublish, "uploading %s to %s failed", file, target).
			WithDetail("file", file).
			WithDetail("bucket", bucket).
			WithDetail("key", key)
	}

	p.logger.Info().Str("url", url).Msg("Uploaded")
	return &Result{File: file, URL: url}, nil
}
