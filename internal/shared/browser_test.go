package shared

import (
	"errors"
	"os/exec"
	"testing"
)

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCommand
	t.Cleanup(func() { getRuntime, startCommand = origRuntime, origStart })

	var started *exec.Cmd
	startCommand = func(cmd *exec.Cmd) error { started = cmd; return nil }

	t.Run("rejects non web URLs", func(t *testing.T) {
		started = nil
		err := OpenBrowser("file:///etc/passwd")
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		if started != nil {
			t.Error("no command should be started")
		}
	})

	t.Run("uses xdg-open on linux", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		if err := OpenBrowser("https://cdn.example.com/v.mp4"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if started == nil || started.Args[0] != "xdg-open" {
			t.Errorf("expected xdg-open, got %v", started)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("https://cdn.example.com/v.mp4"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})

	t.Run("start failure is wrapped", func(t *testing.T) {
		getRuntime = func() string { return "darwin" }
		startCommand = func(*exec.Cmd) error { return errors.New("boom") }
		if err := OpenBrowser("http://localhost:8000/v.mp4"); err == nil {
			t.Error("expected start error")
		}
	})
}
