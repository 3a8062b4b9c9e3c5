package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"viewkit/pkg/scene"
	"viewkit/pkg/script"
)

func newTestViewer(t *testing.T, timeout time.Duration) *viewer {
	t.Helper()
	s, err := scene.Load(filepath.Join("..", "..", "examples", "board.toml"))
	require.NoError(t, err)
	return &viewer{
		scene:   s,
		host:    scene.NewHost(s.Root, zap.NewNop()),
		logger:  zap.NewNop(),
		timeout: timeout,
	}
}

func runSource(src string) func(context.Context, *script.Engine) error {
	return func(ctx context.Context, e *script.Engine) error {
		return e.RunContext(ctx, "console", src)
	}
}

func TestExecScript_InterruptsEndlessScript(t *testing.T) {
	v := newTestViewer(t, 50*time.Millisecond)

	start := time.Now()
	_, err := v.execScript(runSource(`while (true) {}`))
	assert.ErrorIs(t, err, script.ErrInterrupted)
	assert.Less(t, time.Since(start), 5*time.Second)

	require.True(t, v.mu.TryLock(), "frames can take the lock again")
	v.mu.Unlock()
}

func TestExecScript_ReportsChanges(t *testing.T) {
	v := newTestViewer(t, time.Second)

	changed, err := v.execScript(runSource(`scene.ids()`))
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = v.execScript(runSource(`scene.find("pair").setText("changed")`))
	require.NoError(t, err)
	assert.True(t, changed)
}
