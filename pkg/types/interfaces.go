package types

import (
	"context"
	"io"
	"io/fs"
)

// FS is the filesystem surface used by the assembler, the executor and the
// disk image packager.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error

	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Command describes one invocation of an external tool.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory, empty means the current one
	Dir string
}

// CommandResult is what came back from an external tool.
type CommandResult struct {
	ExitCode int
	// Output holds stdout and stderr combined
	Output string
}

// CommandRunner runs external tools. Implementations must capture output and
// return an error for a non-zero exit.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (CommandResult, error)
}
