// Command viewkit-show opens a scene in a window and re-renders it whenever
// the window is resized or a script changes the tree.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"viewkit/pkg/attr"
	"viewkit/pkg/config"
	"viewkit/pkg/observability"
	"viewkit/pkg/render"
	"viewkit/pkg/scene"
	"viewkit/pkg/script"
)

// scriptTimeout bounds a script run; the window cannot draw while one runs.
const scriptTimeout = 5 * time.Second

func main() {
	cfgFile := flag.String("config", "", "config file (default is ./viewkit.toml)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: viewkit-show [flags] <scene.toml>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	scenePath := flag.Arg(0)

	v, err := config.NewViper(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := observability.New(cfg.Logger, zapcore.Lock(os.Stderr))
	defer logger.Sync()

	s, err := scene.Load(scenePath, scene.WithLogger(logger))
	if err != nil {
		logger.Fatal("loading scene", zap.Error(err))
	}
	bg, err := attr.ParseColor(cfg.Render.Background)
	if err != nil {
		bg = attr.Black
	}

	newViewer(s, bg, logger).run(scenePath, cfg.Render.Width, cfg.Render.Height)
}

// viewer owns the scene. Fyne paints rasters off the main goroutine, so
// frames and script runs are serialized by mu.
type viewer struct {
	mu      sync.Mutex
	scene   *scene.Scene
	host    *scene.Host
	bg      color.NRGBA
	logger  *zap.Logger
	timeout time.Duration
	raster  *canvas.Raster
	status  *widget.Label
}

func newViewer(s *scene.Scene, bg color.NRGBA, logger *zap.Logger) *viewer {
	v := &viewer{scene: s, bg: bg, logger: logger, timeout: scriptTimeout}
	v.host = scene.NewHost(s.Root, logger)
	v.raster = canvas.NewRaster(v.draw)
	v.status = widget.NewLabel("")
	return v
}

// draw renders one frame at the raster's pixel size. Fyne calls it on every
// refresh and resize.
func (v *viewer) draw(w, h int) image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()

	c := render.NewCanvas(w, h, nil)
	c.Clear(v.bg)
	bounds := v.host.Frame(c, w, h)
	msg := fmt.Sprintf("%dx%d  root %s  frames %d", w, h, bounds, v.host.Frames())
	fyne.Do(func() { v.status.SetText(msg) })
	return c.Image()
}

func (v *viewer) run(scenePath string, width, height int) {
	a := app.New()
	w := a.NewWindow("viewkit - " + filepath.Base(scenePath))
	w.Resize(fyne.NewSize(float32(width), float32(height)))

	scriptEntry := widget.NewEntry()
	scriptEntry.SetPlaceHolder(`scene.find("pair").setText("hello")`)
	scriptEntry.OnSubmitted = func(src string) {
		v.runScript(func(ctx context.Context, e *script.Engine) error { return e.RunContext(ctx, "console", src) })
	}

	openScript := widget.NewButton("Run file...", func() {
		if len(flag.Args()) < 2 {
			v.status.SetText("pass a script path as the second argument")
			return
		}
		v.runScript(func(ctx context.Context, e *script.Engine) error { return e.RunFile(ctx, flag.Arg(1)) })
	})

	top := container.NewBorder(nil, nil, nil, openScript, scriptEntry)
	w.SetContent(container.NewBorder(top, v.status, nil, nil, v.raster))
	w.Canvas().Focus(scriptEntry)
	w.ShowAndRun()
}

// runScript runs fn against the scene and refreshes the raster when the
// script invalidated anything.
func (v *viewer) runScript(fn func(context.Context, *script.Engine) error) {
	changed, err := v.execScript(fn)
	if err != nil {
		v.status.SetText("Script error: " + err.Error())
		return
	}
	if changed {
		v.raster.Refresh()
	}
}

// execScript holds mu for the length of one script run, interrupting the
// script after v.timeout so frames can resume.
func (v *viewer) execScript(fn func(context.Context, *script.Engine) error) (changed bool, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	v.mu.Lock()
	defer v.mu.Unlock()
	before := v.host.Requests()
	err = fn(ctx, script.New(v.scene, v.logger))
	return v.host.Requests() != before, err
}
