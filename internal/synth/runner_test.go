package synth

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestExecRunnerTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	r := NewExecRunner(50 * time.Millisecond)
	err := r.Run(context.Background(), Command{Name: "sleep", Args: []string{"5"}})
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected a timeout error, got %v", err)
	}
}

func TestExecRunnerReportsStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	r := NewExecRunner(time.Second)
	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo no voice >&2; exit 3"}})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "no voice") {
		t.Errorf("expected stderr in error, got %v", err)
	}
}

func TestExecRunnerStdin(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	r := NewExecRunner(time.Second)
	c := Command{Name: "sh", Args: []string{"-c", `read line; [ "$line" = "hello" ]`}, Stdin: "hello\n"}
	if err := r.Run(context.Background(), c); err != nil {
		t.Fatalf("expected stdin to reach the process, got %v", err)
	}
}

func TestExecRunnerCallerDeadline(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	r := NewExecRunner(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := r.Run(ctx, Command{Name: "sleep", Args: []string{"5"}})
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected a timeout error, got %v", err)
	}
	if strings.Contains(err.Error(), "1h0m0s") {
		t.Errorf("error should report the elapsed time, got %v", err)
	}
}
