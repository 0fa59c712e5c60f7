package executor

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	synthfsfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/filesystem"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

const (
	defaultDirMode  fs.FileMode = 0755
	defaultFileMode fs.FileMode = 0644
)

// errHalted is returned by pipeline steps queued after a failed one
var errHalted = stderrors.New("skipped after an earlier failure")

// Options contains configuration for the executor
type Options struct {
	DryRun bool
	Logger zerolog.Logger
	// Filesystem operations interface for testing
	FS types.FS
}

// Executor applies operations to a filesystem through a synthfs pipeline
type Executor struct {
	dryRun bool
	logger zerolog.Logger
	fs     types.FS
	// pipelineFS is handed to synthfs, the steps themselves write through fs
	pipelineFS synthfsfs.FullFileSystem
}

// Result describes one Execute call.
type Result struct {
	// Completed holds the operations that finished, in order. In dry run
	// mode they are all marked skipped.
	Completed []types.Operation
	// Failed is the operation that stopped the run, nil on success
	Failed   *types.Operation
	Duration time.Duration
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	return &Executor{
		dryRun:     opts.DryRun,
		logger:     logger,
		fs:         fsys,
		pipelineFS: pipelineFileSystem(fsys),
	}
}

// pipelineFileSystem picks the synthfs filesystem matching fsys, so that an
// in-memory run never reaches the disk.
func pipelineFileSystem(fsys types.FS) synthfsfs.FullFileSystem {
	if filesystem.IsOS(fsys) {
		return synthfs.NewPathAwareFileSystem(synthfsfs.NewOSFileSystem("/"), "/").WithAbsolutePaths()
	}
	return synthfs.NewPathAwareFileSystem(synthfsfs.NewTestFileSystem(), "/").WithAbsolutePaths()
}

// DryRun reports whether operations are only logged.
func (e *Executor) DryRun() bool {
	return e.dryRun
}

// run tracks one pipeline execution
type run struct {
	ops    []types.Operation
	done   []types.Operation
	failed int
	err    error
}

// Execute runs ops in order and stops at the first failure. The returned
// Result is never nil, on failure it tells how far the run got.
func (e *Executor) Execute(ops []types.Operation) (*Result, error) {
	start := time.Now()
	result := &Result{Completed: make([]types.Operation, 0, len(ops))}

	if e.dryRun {
		for _, op := range ops {
			e.logOperation(op)
			op.Status = types.StatusSkipped
			result.Completed = append(result.Completed, op)
		}
		result.Duration = time.Since(start)
		return result, nil
	}
	if len(ops) == 0 {
		return result, nil
	}

	// Every operation becomes one synthfs step. The pipeline never rolls
	// back, a partial bundle is left for inspection.
	sfs := synthfs.New()
	r := &run{ops: ops, failed: -1}
	steps := make([]synthfs.Operation, 0, len(ops))
	index := make(map[synthfs.OperationID]int, len(ops))
	for i, op := range ops {
		id := fmt.Sprintf("%03d_%s_%s", i, op.Type, filepath.Base(op.Target))
		step := sfs.CustomOperationWithID(id, e.step(r, i))
		index[step.ID()] = i
		steps = append(steps, step)
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	e.logger.Debug().Int("operations", len(steps)).Msg("Executing operation pipeline")
	pipelineResult, pipelineErr := synthfs.RunWithOptions(context.Background(), e.pipelineFS, options, steps...)
	e.logResults(pipelineResult, index)

	result.Completed = append(result.Completed, r.done...)
	result.Duration = time.Since(start)

	if r.err != nil {
		failed := r.ops[r.failed]
		failed.Status = types.StatusError
		result.Failed = &failed

		e.logger.Error().
			Err(r.err).
			Str("operation", failed.String()).
			Int("completed", len(result.Completed)).
			Msg("Operation failed")
		return result, withOperation(r.err, failed, len(result.Completed))
	}
	if pipelineErr != nil || len(r.done) != len(ops) {
		if pipelineErr == nil {
			pipelineErr = stderrors.New("not every operation ran")
		}
		return result, errors.Wrap(pipelineErr, errors.ErrInternal, "operation pipeline failed").
			WithDetail("completed", len(result.Completed))
	}

	e.logger.Debug().
		Int("operations", len(result.Completed)).
		Dur("duration", result.Duration).
		Msg("Operations executed")
	return result, nil
}

// step wraps operation i for the synthfs pipeline.
func (e *Executor) step(r *run, i int) func(context.Context, synthfsfs.FileSystem) error {
	return func(_ context.Context, _ synthfsfs.FileSystem) error {
		if r.err != nil {
			return errHalted
		}
		op := r.ops[i]
		e.logOperation(op)
		if err := e.apply(op); err != nil {
			r.err = err
			r.failed = i
			return err
		}
		op.Status = types.StatusDone
		r.done = append(r.done, op)
		return nil
	}
}

// logResults reports the per step timing synthfs recorded
func (e *Executor) logResults(result *synthfs.Result, index map[synthfs.OperationID]int) {
	if result == nil {
		return
	}
	for _, opResult := range result.GetOperations() {
		res, ok := opResult.(synthfs.OperationResult)
		if !ok {
			continue
		}
		i, known := index[res.OperationID]
		if !known {
			continue
		}
		event := e.logger.Trace()
		if res.Status != synthfs.StatusSuccess {
			event = e.logger.Debug().Err(res.Error)
		}
		event.
			Int("index", i).
			Str("id", string(res.OperationID)).
			Dur("duration", res.Duration).
			Msg("Pipeline step finished")
	}
}

func (e *Executor) logOperation(op types.Operation) {
	e.logger.Debug().
		Str("type", string(op.Type)).
		Str("source", op.Source).
		Str("target", op.Target).
		Bool("dry_run", e.dryRun).
		Msg(op.Description)
}

func withOperation(err error, op types.Operation, completed int) error {
	be, ok := err.(*errors.BundlerError)
	if !ok {
		be = errors.Wrapf(err, errors.ErrInternal, "%s failed", op.Type)
	}
	return be.
		WithDetail("operation", op.String()).
		WithDetail("completed", completed)
}

func modeOr(mode *uint32, fallback fs.FileMode) fs.FileMode {
	if mode == nil {
		return fallback
	}
	return fs.FileMode(*mode)
}

// apply runs a single operation
func (e *Executor) apply(op types.Operation) error {
	if op.Target == "" {
		return errors.Newf(errors.ErrOperationInvalid, "%s operation requires a target", op.Type)
	}

	switch op.Type {
	case types.OperationCreateDir:
		if err := e.fs.MkdirAll(op.Target, modeOr(op.Mode, defaultDirMode)); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", op.Target).
				WithDetail("target", op.Target)
		}

	case types.OperationCopyFile:
		var perm fs.FileMode
		if op.Mode != nil {
			perm = fs.FileMode(*op.Mode)
		}
		return filesystem.CopyFile(e.fs, op.Source, op.Target, perm)

	case types.OperationCopyTree:
		return filesystem.CopyTree(e.fs, op.Source, op.Target)

	case types.OperationWriteFile:
		if err := e.fs.MkdirAll(filepath.Dir(op.Target), defaultDirMode); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", op.Target).
				WithDetail("target", op.Target)
		}
		if err := e.fs.WriteFile(op.Target, []byte(op.Content), modeOr(op.Mode, defaultFileMode)); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", op.Target).
				WithDetail("target", op.Target)
		}

	case types.OperationChmod:
		if op.Mode == nil {
			return errors.New(errors.ErrOperationInvalid, "chmod operation requires a mode")
		}
		if err := e.fs.Chmod(op.Target, fs.FileMode(*op.Mode)); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to change mode of %s", op.Target).
				WithDetail("target", op.Target)
		}

	case types.OperationCreateSymlink:
		if op.Source == "" {
			return errors.New(errors.ErrOperationInvalid, "symlink operation requires a source")
		}
		if err := e.fs.MkdirAll(filepath.Dir(op.Target), defaultDirMode); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", op.Target).
				WithDetail("target", op.Target)
		}
		// Replace whatever is in the way
		if _, err := e.fs.Lstat(op.Target); err == nil {
			if err := e.fs.Remove(op.Target); err != nil {
				return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to remove existing %s", op.Target).
					WithDetail("target", op.Target)
			}
		}
		if err := e.fs.Symlink(op.Source, op.Target); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s to %s", op.Target, op.Source).
				WithDetail("source", op.Source).
				WithDetail("target", op.Target)
		}

	case types.OperationRemoveAll:
		if err := e.fs.RemoveAll(op.Target); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", op.Target).
				WithDetail("target", op.Target)
		}

	default:
		return errors.Newf(errors.ErrOperationInvalid, "unknown operation type: %s", op.Type)
	}
	return nil
}
