package main

import (
	"fmt"
	"image/color"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"viewkit/pkg/attr"
	"viewkit/pkg/config"
	"viewkit/pkg/observability"
	"viewkit/pkg/scene"
	"viewkit/pkg/text"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// flagKeys maps command flags to configuration keys.
var flagKeys = map[string]string{
	"width":      "render.width",
	"height":     "render.height",
	"background": "render.background",
	"font":       "render.font_path",
	"text-size":  "render.text_size",
	"log-level":  "logger.level",
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "viewkit",
		Short:         "Lay out and render viewkit scene files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./viewkit.toml)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newRenderCmd(a), newInspectCmd(a), newRefsCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.New(cfg.Logger, zapcore.AddSync(cmd.ErrOrStderr()))
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// addFrameFlags registers the frame size and style flags shared by the
// render-like commands. Defaults come from configuration.
func addFrameFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("width", "W", 0, "frame width in pixels")
	cmd.Flags().IntP("height", "H", 0, "frame height in pixels")
	cmd.Flags().String("background", "", "background color (#AARRGGBB, #RRGGBB or a name)")
	cmd.Flags().String("font", "", "TTF font used for text (default: Go Regular)")
	cmd.Flags().Float64("text-size", 0, "default text size in pixels")
}

// loadScene builds the scene at path with the configured text style.
func (a *app) loadScene(path string) (*scene.Scene, error) {
	style := text.Style{Size: a.cfg.Render.TextSize, Color: attr.White, FontPath: a.cfg.Render.FontPath}
	s, err := scene.Load(path, scene.WithTextStyle(style), scene.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.logger.Debug("scene loaded", zap.String("path", path), zap.Strings("ids", s.IDs()))
	return s, nil
}

func (a *app) background() color.NRGBA {
	c, err := attr.ParseColor(a.cfg.Render.Background)
	if err != nil {
		return attr.Black
	}
	return c
}
