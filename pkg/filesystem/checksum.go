package filesystem

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

// Checksum calculates the SHA256 checksum of a file as "sha256:<hex>".
func Checksum(fsys types.FS, path string) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileNotFound, "cannot open %s", path).
			WithDetail("path", path)
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).
			WithDetail("path", path)
	}

	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}
