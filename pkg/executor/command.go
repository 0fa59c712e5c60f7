package executor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

// CommandRunner runs external tools with os/exec
type CommandRunner struct {
	logger zerolog.Logger
	dryRun bool
}

var _ types.CommandRunner = (*CommandRunner)(nil)

// NewCommandRunner creates a new command runner
func NewCommandRunner(dryRun bool) *CommandRunner {
	return &CommandRunner{
		logger: logging.GetLogger("executor.command"),
		dryRun: dryRun,
	}
}

// Run executes cmd and waits for it. Stdout and stderr are captured together.
// A non-zero exit is a TOOL_EXECUTE error carrying the captured output.
func (r *CommandRunner) Run(ctx context.Context, cmd types.Command) (types.CommandResult, error) {
	if cmd.Name == "" {
		return types.CommandResult{}, errors.New(errors.ErrInvalidInput, "command requires a name")
	}

	logging.LogCommand(cmd.Name, cmd.Args)
	r.logger.Info().
		Str("command", cmd.Name).
		Strs("args", cmd.Args).
		Str("workingDir", cmd.Dir).
		Msg("Executing command")

	if r.dryRun {
		r.logger.Info().Msg("Dry run mode - command would be executed")
		return types.CommandResult{}, nil
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		if _, err := os.Stat(cmd.Dir); os.IsNotExist(err) {
			return types.CommandResult{}, errors.Newf(errors.ErrFileAccess,
				"working directory does not exist: %s", cmd.Dir)
		}
		c.Dir = cmd.Dir
	}

	var output bytes.Buffer
	c.Stdout = &output
	c.Stderr = &output

	err := c.Run()

	result := types.CommandResult{Output: output.String()}
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}

	if output.Len() > 0 {
		r.logger.Debug().
			Str("output", result.Output).
			Msg("Command output")
	}

	if err != nil {
		r.logger.Error().
			Err(err).
			Str("command", cmd.Name).
			Strs("args", cmd.Args).
			Int("exitCode", result.ExitCode).
			Str("output", result.Output).
			Msg("Command execution failed")

		return result, errors.Wrapf(err, errors.ErrToolExecute,
			"%s failed: %s", cmd.Name, strings.TrimSpace(result.Output)).
			WithDetail("command", cmd.Name).
			WithDetail("args", cmd.Args).
			WithDetail("exit_code", result.ExitCode).
			WithDetail("output", result.Output)
	}

	r.logger.Info().
		Str("command", cmd.Name).
		Msg("Command executed successfully")
	return result, nil
}
