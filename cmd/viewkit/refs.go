package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"viewkit/pkg/visualtest"
)

// newRefsCmd checks or regenerates the reference PNGs kept next to scene
// files: dir/name.toml pairs with dir/reference/name.png.
func newRefsCmd(a *app) *cobra.Command {
	var update bool
	cmd := &cobra.Command{
		Use:   "refs <dir>",
		Short: "Compare scenes in a directory against their reference images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			scenes, err := filepath.Glob(filepath.Join(dir, "*.toml"))
			if err != nil {
				return err
			}
			if len(scenes) == 0 {
				return fmt.Errorf("no scene files in %s", dir)
			}

			width, height := a.cfg.Render.Width, a.cfg.Render.Height
			bg := a.background()
			out := cmd.OutOrStdout()
			var failed []string
			for _, scenePath := range scenes {
				name := strings.TrimSuffix(filepath.Base(scenePath), ".toml")
				refPath := filepath.Join(dir, "reference", name+".png")

				if update {
					if err := visualtest.UpdateReferenceImage(scenePath, refPath, width, height, bg); err != nil {
						return fmt.Errorf("failed to generate %s: %w", refPath, err)
					}
					fmt.Fprintf(out, "updated %s\n", refPath)
					continue
				}

				if _, err := os.Stat(refPath); err != nil {
					fmt.Fprintf(out, "SKIP %s: no reference image\n", name)
					continue
				}
				actualPath := filepath.Join(os.TempDir(), "viewkit-"+name+".png")
				if err := visualtest.RenderSceneToFile(scenePath, actualPath, width, height, bg); err != nil {
					return err
				}
				diffPath := filepath.Join(dir, "reference", name+"-diff.png")
				result, err := visualtest.CompareFiles(actualPath, refPath, diffPath, visualtest.DefaultOptions())
				_ = os.Remove(actualPath)
				if err != nil || !result.Match {
					failed = append(failed, name)
					a.logger.Warn("reference mismatch", zap.String("scene", name), zap.Error(err))
					fmt.Fprintf(out, "FAIL %s\n", name)
					continue
				}
				fmt.Fprintf(out, "ok   %s\n", name)
			}

			if len(failed) > 0 {
				return fmt.Errorf("%d of %d scenes differ from their references: %s",
					len(failed), len(scenes), strings.Join(failed, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&update, "update", false, "regenerate reference images instead of comparing")
	addFrameFlags(cmd)
	return cmd
}
