package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

// CopyFile copies a single regular file, creating the parent directories of
// dst. A zero perm keeps the mode of src.
func CopyFile(fsys types.FS, src, dst string, perm fs.FileMode) error {
	info, err := fsys.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileNotFound, "source file does not exist: %s", src).
				WithDetail("source", src)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src).
			WithDetail("source", src)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrFileCopy, "source is a directory: %s", src).
			WithDetail("source", src).
			WithDetail("target", dst)
	}

	if perm == 0 {
		perm = info.Mode().Perm()
	}

	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to read %s", src).
			WithDetail("source", src).
			WithDetail("target", dst)
	}

	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", dst).
			WithDetail("target", dst)
	}

	if err := fsys.WriteFile(dst, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", src, dst).
			WithDetail("source", src).
			WithDetail("target", dst)
	}

	// WriteFile leaves the mode of an existing file alone
	if err := fsys.Chmod(dst, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to set mode on %s", dst).
			WithDetail("target", dst)
	}
	return nil
}

// CopyTree recursively copies the directory src into dst. File modes are kept
// and symlinks are recreated rather than followed.
func CopyTree(fsys types.FS, src, dst string) error {
	logger := logging.GetLogger("filesystem.copy")

	info, err := fsys.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileNotFound, "source directory does not exist: %s", src).
				WithDetail("source", src)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src).
			WithDetail("source", src)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrFileCopy, "source is not a directory: %s", src).
			WithDetail("source", src)
	}

	if err := fsys.MkdirAll(dst, info.Mode().Perm()|0700); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dst).
			WithDetail("target", dst)
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", src).
			WithDetail("source", src)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		linfo, err := fsys.Lstat(from)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", from).
				WithDetail("source", from)
		}

		switch {
		case linfo.Mode()&os.ModeSymlink != 0:
			target, err := fsys.Readlink(from)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileCopy, "failed to read link %s", from).
					WithDetail("source", from)
			}
			if err := fsys.Symlink(target, to); err != nil {
				return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create link %s", to).
					WithDetail("source", target).
					WithDetail("target", to)
			}
		case linfo.IsDir():
			if err := CopyTree(fsys, from, to); err != nil {
				return err
			}
		default:
			if err := CopyFile(fsys, from, to, 0); err != nil {
				return err
			}
		}
	}

	logger.Trace().Str("source", src).Str("target", dst).Int("entries", len(entries)).Msg("Copied directory")
	return nil
}
