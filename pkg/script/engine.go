// Package script runs JavaScript against a built scene. Scripts find nodes
// by id, mutate them and add children; every mutation goes through the
// node's own setters, so invalidation reaches the host as usual.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"viewkit/pkg/observability"
	"viewkit/pkg/scene"
	"viewkit/pkg/view"
)

// ErrInterrupted is returned when a script is stopped by its context.
var ErrInterrupted = errors.New("script interrupted")

// Engine executes scripts against one scene.
type Engine struct {
	vm      *goja.Runtime
	scene   *scene.Scene
	logger  *zap.Logger
	proxies map[view.Node]*goja.Object
}

// New creates an engine with `scene` and `console` globals bound to s.
func New(s *scene.Scene, logger *zap.Logger) *Engine {
	vm := goja.New()
	e := &Engine{
		vm:      vm,
		scene:   s,
		logger:  observability.OrNop(logger),
		proxies: make(map[view.Node]*goja.Object),
	}

	c := &consoleAPI{logger: e.logger.Named("console")}
	c.register(vm)
	e.registerScene()
	return e
}

// Run executes src. name labels stack traces.
func (e *Engine) Run(name, src string) error {
	return e.RunContext(context.Background(), name, src)
}

// RunContext executes src, interrupting it when ctx is done.
func (e *Engine) RunContext(ctx context.Context, name, src string) error {
	stop := context.AfterFunc(ctx, func() {
		e.vm.Interrupt(ErrInterrupted)
	})
	defer func() {
		stop()
		e.vm.ClearInterrupt()
	}()

	if _, err := e.vm.RunScript(name, src); err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return fmt.Errorf("%s: %w", name, ErrInterrupted)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// RunFile executes the script at path.
func (e *Engine) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return e.RunContext(ctx, path, string(src))
}

// throw raises err as a JavaScript exception carrying the Go error.
func (e *Engine) throw(err error) {
	panic(e.vm.NewGoError(err))
}
