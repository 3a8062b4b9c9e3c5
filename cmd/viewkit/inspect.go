package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"viewkit/pkg/scene"
)

func newInspectCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <scene.toml>",
		Short: "Print the measured size and bounds of every node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadScene(args[0])
			if err != nil {
				return err
			}
			scene.NewHost(s.Root, a.logger).Layout(a.cfg.Render.Width, a.cfg.Render.Height)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(scene.Describe(s))
			}
			return scene.WriteTree(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a tree")
	addFrameFlags(cmd)
	return cmd
}
