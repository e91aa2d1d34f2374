package executor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	if !New().Available("sh") {
		t.Skip("sh not available")
	}

	tests := []struct {
		name       string
		script     string
		wantOut    string
		wantErr    bool
		wantStderr string
	}{
		{"stdout captured", "echo hello", "hello\n", false, ""},
		{"failure without stderr", "exit 3", "", true, ""},
		{"failure with stderr", "echo boom >&2; exit 1", "", true, "stderr: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New().Execute(context.Background(), "sh", "-c", tt.script)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if out != tt.wantOut {
				t.Errorf("Execute() out = %q, want %q", out, tt.wantOut)
			}
			if tt.wantStderr != "" && !strings.Contains(err.Error(), tt.wantStderr) {
				t.Errorf("Execute() error = %q, want it to contain %q", err.Error(), tt.wantStderr)
			}
		})
	}
}

func TestExecuteRunsInWorkingDir(t *testing.T) {
	if !New().Available("sh") {
		t.Skip("sh not available")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want, err := filepath.EvalSymlinks(wd)
	if err != nil {
		t.Fatal(err)
	}

	out, err := New().Execute(context.Background(), "sh", "-c", "pwd -P")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("Execute() ran in %q, want %q", got, want)
	}
}

func TestAvailable(t *testing.T) {
	if New().Available("definitely-not-a-real-binary-xyz") {
		t.Error("Available() = true for a missing binary")
	}
}
