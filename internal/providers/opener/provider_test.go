package opener

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLauncher struct {
	opened   []string
	revealed []string
	err      error
}

func (f *fakeLauncher) Open(ctx context.Context, target string) error {
	if f.err != nil {
		return f.err
	}
	f.opened = append(f.opened, target)
	return nil
}

func (f *fakeLauncher) Reveal(ctx context.Context, path string) error {
	if f.err != nil {
		return f.err
	}
	f.revealed = append(f.revealed, path)
	return nil
}

func TestOpenURL(t *testing.T) {
	ctx := context.Background()

	t.Run("opens http and https URLs", func(t *testing.T) {
		launcher := &fakeLauncher{}
		p := NewProviderWithLauncher(launcher)

		for _, raw := range []string{"https://example.com", "http://localhost:1420/docs"} {
			result, err := p.Execute(ctx, "open_url", map[string]interface{}{"url": raw}, nil)
			require.NoError(t, err)
			assert.True(t, result.Success, "open_url(%q)", raw)
		}
		assert.Equal(t, []string{"https://example.com", "http://localhost:1420/docs"}, launcher.opened)
	})

	t.Run("rejects non-http schemes", func(t *testing.T) {
		launcher := &fakeLauncher{}
		p := NewProviderWithLauncher(launcher)

		for _, raw := range []string{"file:///etc/passwd", "javascript:alert(1)", "ftp://host/file"} {
			result, err := p.Execute(ctx, "open_url", map[string]interface{}{"url": raw}, nil)
			require.NoError(t, err)
			assert.False(t, result.Success, "open_url(%q) should fail", raw)
		}
		assert.Empty(t, launcher.opened, "rejected URLs must never reach the launcher")
	})

	t.Run("missing url fails", func(t *testing.T) {
		p := NewProviderWithLauncher(&fakeLauncher{})
		result, err := p.Execute(ctx, "open_url", map[string]interface{}{}, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
	})

	t.Run("launcher failures come back as text", func(t *testing.T) {
		p := NewProviderWithLauncher(&fakeLauncher{err: errors.New("no browser")})
		result, err := p.Execute(ctx, "open_url", map[string]interface{}{"url": "https://example.com"}, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Contains(t, *result.Error, "no browser")
	})
}

func TestOpenPath(t *testing.T) {
	ctx := context.Background()

	t.Run("opens an existing file and reports its media type", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello world\n"), 0o644))

		launcher := &fakeLauncher{}
		p := NewProviderWithLauncher(launcher)

		result, err := p.Execute(ctx, "open_path", map[string]interface{}{"path": path}, nil)
		require.NoError(t, err)
		require.True(t, result.Success)
		assert.Equal(t, []string{path}, launcher.opened)

		mediaType, _ := result.Data["media_type"].(string)
		assert.True(t, strings.HasPrefix(mediaType, "text/plain"), "media_type = %q", mediaType)
	})

	t.Run("opens a directory", func(t *testing.T) {
		dir := t.TempDir()
		p := NewProviderWithLauncher(&fakeLauncher{})

		result, err := p.Execute(ctx, "open_path", map[string]interface{}{"path": dir}, nil)
		require.NoError(t, err)
		require.True(t, result.Success)
		assert.Equal(t, "inode/directory", result.Data["media_type"])
	})

	t.Run("missing path on disk fails", func(t *testing.T) {
		launcher := &fakeLauncher{}
		p := NewProviderWithLauncher(launcher)

		result, err := p.Execute(ctx, "open_path", map[string]interface{}{
			"path": filepath.Join(t.TempDir(), "nope"),
		}, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Empty(t, launcher.opened)
	})
}

func TestRevealPath(t *testing.T) {
	ctx := context.Background()

	t.Run("reveals an existing path", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "report.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

		launcher := &fakeLauncher{}
		p := NewProviderWithLauncher(launcher)

		result, err := p.Execute(ctx, "reveal_path", map[string]interface{}{"path": path}, nil)
		require.NoError(t, err)
		require.True(t, result.Success)
		assert.Equal(t, []string{path}, launcher.revealed)
	})

	t.Run("missing path fails", func(t *testing.T) {
		p := NewProviderWithLauncher(&fakeLauncher{})
		result, err := p.Execute(ctx, "reveal_path", map[string]interface{}{
			"path": filepath.Join(t.TempDir(), "gone"),
		}, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
	})
}

func TestUnknownOpenerCommand(t *testing.T) {
	p := NewProviderWithLauncher(&fakeLauncher{})
	result, err := p.Execute(context.Background(), "open_portal", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}
