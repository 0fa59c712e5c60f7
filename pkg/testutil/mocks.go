package testutil

import (
	"context"

	"github.com/arthur-debert/macappbundler/pkg/types"
)

// FakeRunner records commands instead of running them
type FakeRunner struct {
	Calls  []types.Command
	Result types.CommandResult
	Err    error
}

// Run records cmd and returns the canned result
func (f *FakeRunner) Run(_ context.Context, cmd types.Command) (types.CommandResult, error) {
	f.Calls = append(f.Calls, cmd)
	return f.Result, f.Err
}

// FakeLocator returns a fixed launcher path
type FakeLocator struct {
	Path string
	Err  error
}

// Locate prefers an explicit path like the real locator
func (f FakeLocator) Locate(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return f.Path, f.Err
}

// Upload is one recorded FakeUploader call
type Upload struct {
	Path   string
	Bucket string
	Key    string
}

// FakeUploader records uploads
type FakeUploader struct {
	Uploads []Upload
	Err     error
}

// Upload records the call and returns the object's s3 URL
func (f *FakeUploader) Upload(_ context.Context, path, bucket, key string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.Uploads = append(f.Uploads, Upload{Path: path, Bucket: bucket, Key: key})
	return "s3://" + bucket + "/" + key, nil
}
