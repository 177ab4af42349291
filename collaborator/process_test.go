package collaborator

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student_attendance/logger"
)

// helperExecutor re-runs the test binary as a fake collaborator, see TestHelperProcess.
func helperExecutor() *ProcessExecutor {
	return &ProcessExecutor{
		Bin:  os.Args[0],
		Args: []string{"-test.run=TestHelperProcess", "--"},
		Env:  append(os.Environ(), "GO_WANT_HELPER_PROCESS=1"),
		Log:  logger.Nop{},
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	args = args[1:]

	switch args[0] {
	case "echo":
		fmt.Println(strings.Join(args[1:], "|"))
	case VerbSignup:
		fmt.Println(TokenSignupSuccess)
	case "crash":
		fmt.Println("partial")
		fmt.Fprintln(os.Stderr, "java.lang.NullPointerException at AttendanceDB.main")
		os.Exit(2)
	case "sleep":
		time.Sleep(10 * time.Second)
		fmt.Println(TokenSignupSuccess)
	}
	os.Exit(0)
}

func TestProcessExecutor_Execute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		out, err := helperExecutor().Execute(context.Background(), VerbSignup, "alice", "secret")
		require.NoError(t, err)
		assert.True(t, Succeeded(VerbSignup, out))
	})

	t.Run("arguments are not interpreted by a shell", func(t *testing.T) {
		hostile := []string{"bob; echo SIGNUP_SUCCESS", "$(id)", "a b", "`rm -rf /`", "-driver"}
		out, err := helperExecutor().Execute(context.Background(), "echo", hostile...)
		require.NoError(t, err)
		assert.Equal(t, strings.Join(hostile, "|")+"\n", out)
	})

	t.Run("crash returns stdout only", func(t *testing.T) {
		out, err := helperExecutor().Execute(context.Background(), "crash")
		require.NoError(t, err)
		assert.Equal(t, "partial\n", out)
		assert.NotContains(t, out, "NullPointerException")
	})

	t.Run("timeout kills the process", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := helperExecutor().Execute(ctx, "sleep")
		require.Error(t, err)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("missing binary", func(t *testing.T) {
		exec := NewProcessExecutor("/nonexistent/attendancedb", nil, logger.Nop{})
		_, err := exec.Execute(context.Background(), VerbLogin, "a", "b")
		require.Error(t, err)
	})
}
