package opener

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Launcher hands a target to the operating system's default handler
type Launcher interface {
	Open(ctx context.Context, target string) error
	Reveal(ctx context.Context, path string) error
}

// execLauncher shells out to the platform open command
type execLauncher struct {
	goos string
}

func platformLauncher() Launcher {
	return &execLauncher{goos: runtime.GOOS}
}

func (l *execLauncher) Open(ctx context.Context, target string) error {
	var cmd *exec.Cmd
	switch l.goos {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", target)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", target)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", target)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("launcher failed: %v: %s", err, out)
	}
	return nil
}

func (l *execLauncher) Reveal(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch l.goos {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", "-R", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "explorer", "/select,", path)
	default:
		// No portable select-on-reveal on Linux; open the parent directory
		cmd = exec.CommandContext(ctx, "xdg-open", filepath.Dir(path))
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("launcher failed: %v: %s", err, out)
	}
	return nil
}
