package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"viewkit/pkg/render"
	"viewkit/pkg/scene"
	"viewkit/pkg/script"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output  string
		scripts []string
	)
	cmd := &cobra.Command{
		Use:   "render <scene.toml>",
		Short: "Render one frame of a scene to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenePath := args[0]
			if output == "" {
				output = strings.TrimSuffix(scenePath, filepath.Ext(scenePath)) + ".png"
			}

			s, err := a.loadScene(scenePath)
			if err != nil {
				return err
			}
			host := scene.NewHost(s.Root, a.logger)

			if len(scripts) > 0 {
				engine := script.New(s, a.logger)
				for _, path := range scripts {
					if err := engine.RunFile(cmd.Context(), path); err != nil {
						return err
					}
				}
				a.logger.Debug("scripts applied",
					zap.Int("count", len(scripts)),
					zap.Int("redraw_requests", host.Requests()))
			}

			width, height := a.cfg.Render.Width, a.cfg.Render.Height
			canvas := render.NewCanvas(width, height, nil)
			canvas.Clear(a.background())
			bounds := host.Frame(canvas, width, height)

			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			if err := canvas.SavePNG(output); err != nil {
				return fmt.Errorf("saving %s: %w", output, err)
			}
			a.logger.Info("rendered",
				zap.String("scene", scenePath),
				zap.String("output", output),
				zap.Stringer("bounds", bounds))
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %s to %s (%dx%d)\n", scenePath, output, width, height)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (default: scene path with .png)")
	cmd.Flags().StringArrayVarP(&scripts, "script", "s", nil, "JavaScript file run against the scene before rendering (repeatable)")
	addFrameFlags(cmd)
	return cmd
}
