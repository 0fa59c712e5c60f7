package types

import "fmt"

// OperationType defines the type of file system operation
type OperationType string

const (
	// OperationCreateDir creates a directory
	OperationCreateDir OperationType = "create_dir"

	// OperationCopyFile copies a single file
	OperationCopyFile OperationType = "copy_file"

	// OperationCopyTree copies a directory recursively
	OperationCopyTree OperationType = "copy_tree"

	// OperationWriteFile writes content to a file
	OperationWriteFile OperationType = "write_file"

	// OperationChmod changes the permissions of a file
	OperationChmod OperationType = "chmod"

	// OperationCreateSymlink creates a symbolic link
	OperationCreateSymlink OperationType = "create_symlink"

	// OperationRemoveAll removes a path and everything below it
	OperationRemoveAll OperationType = "remove_all"
)

// OperationStatus defines the state of an operation
type OperationStatus string

const (
	// StatusReady means the operation is ready to be executed
	StatusReady OperationStatus = "ready"
	// StatusDone means the operation was executed successfully
	StatusDone OperationStatus = "done"
	// StatusSkipped means the operation was only logged (dry run)
	StatusSkipped OperationStatus = "skipped"
	// StatusError means the operation failed
	StatusError OperationStatus = "error"
)

// Operation represents a low-level file system operation.
// A bundle assembly is a linear sequence of these.
type Operation struct {
	// Type is the type of operation
	Type OperationType `json:"type" yaml:"type"`

	// Source is the source path (for copies and symlink targets)
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Target is the target path
	Target string `json:"target" yaml:"target"`

	// Content is the content to write (for write operations)
	Content string `json:"-" yaml:"-"`

	// Mode is the file permissions (optional)
	Mode *uint32 `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Description is a human-readable description
	Description string `json:"description" yaml:"description"`

	// Status is the current state of the operation
	Status OperationStatus `json:"status" yaml:"status"`
}

// String renders the operation for logs.
func (o Operation) String() string {
	if o.Source != "" {
		return fmt.Sprintf("%s %s -> %s", o.Type, o.Source, o.Target)
	}
	return fmt.Sprintf("%s %s", o.Type, o.Target)
}

// FileMode returns a pointer suitable for Operation.Mode.
func FileMode(mode uint32) *uint32 {
	return &mode
}
