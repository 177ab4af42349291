package collaborator

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"student_attendance/logger"
)

// ErrUnavailable wraps every failure to obtain an answer from the collaborator.
var ErrUnavailable = errors.New("persistence collaborator unavailable")

const DefaultTimeout = 5 * time.Second

type Result struct {
	Verb   string
	Output string
	OK     bool
}

// Lines returns the non-empty output lines that follow the success token.
func (r Result) Lines() []string {
	token := SuccessToken(r.Verb)
	idx := strings.Index(r.Output, token)
	if token == "" || idx < 0 {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(r.Output[idx+len(token):], "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Client makes exactly one bounded call per request; it never retries.
type Client struct {
	exec    Executor
	timeout time.Duration
	log     logger.Logger
}

func NewClient(exec Executor, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{exec: exec, timeout: timeout, log: log}
}

func (c *Client) Call(ctx context.Context, verb string, args ...string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	out, err := c.exec.Execute(ctx, verb, args...)
	if err != nil {
		c.log.Error("collaborator call failed", err, map[string]interface{}{
			"verb":    verb,
			"elapsed": time.Since(start).String(),
			"output":  out,
		})
		return Result{Verb: verb}, errors.Wrapf(ErrUnavailable, "%s: %v", verb, err)
	}

	res := Result{Verb: verb, Output: out, OK: Succeeded(verb, out)}
	if !res.OK {
		c.log.Warn("collaborator rejected request", map[string]interface{}{
			"verb":   verb,
			"output": strings.TrimSpace(out),
		})
	}
	return res, nil
}
