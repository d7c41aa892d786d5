package scripting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcherReportsScriptChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeScript(t, dir, "ignored.txt", "x")
	writeScript(t, dir, "main.lua", "x = 1")

	select {
	case path := <-w.Reloads():
		assert.Contains(t, path, "main.lua")
	case <-time.After(5 * time.Second):
		t.Fatal("no reload notification")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(t.TempDir()+"/absent", zap.NewNop())
	assert.Error(t, err)
}

func TestIsScriptFile(t *testing.T) {
	assert.True(t, isScriptFile("a/b.lua"))
	assert.True(t, isScriptFile("B.LUA"))
	assert.False(t, isScriptFile("b.yaml"))
}
