package collaborator

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"

	"student_attendance/logger"
)

// ProcessExecutor runs the collaborator binary once per call. Arguments travel as a plain argv slice,
// so user input is never seen by a shell.
type ProcessExecutor struct {
	Bin  string
	Args []string // placed before the verb
	Env  []string // nil inherits the server environment
	Log  logger.Logger
}

var _ Executor = (*ProcessExecutor)(nil)

func NewProcessExecutor(bin string, args []string, log logger.Logger) *ProcessExecutor {
	return &ProcessExecutor{Bin: bin, Args: args, Log: log}
}

func (p *ProcessExecutor) Execute(ctx context.Context, verb string, args ...string) (string, error) {
	argv := make([]string, 0, len(p.Args)+1+len(args))
	argv = append(argv, p.Args...)
	argv = append(argv, verb)
	argv = append(argv, args...)

	cmd := exec.CommandContext(ctx, p.Bin, argv...)
	if p.Env != nil {
		cmd.Env = p.Env
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if stderr.Len() > 0 && p.Log != nil {
		p.Log.Warn("collaborator stderr", map[string]interface{}{
			"verb":   verb,
			"stderr": strings.TrimSpace(stderr.String()),
		})
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.String(), errors.Wrap(ctxErr, "waiting for collaborator")
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// a crashed or rejecting collaborator still answers through stdout
		return stdout.String(), nil
	}
	if err != nil {
		return "", errors.Wrap(err, "starting collaborator")
	}
	return stdout.String(), nil
}
