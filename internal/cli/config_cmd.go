package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeflow/pkg/config"
)

// configCommand creates the config command and its subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration file",
	}
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings()
			path := c.configPath
			if path == "" {
				path = config.Path()
			}
			con := console{cmd.OutOrStdout()}
			con.heading("Configuration")
			con.field("file", path)
			con.field("cell size", fmt.Sprintf("%gx%g px", cfg.Canvas.CellWidth, cfg.Canvas.CellHeight))
			con.field("background", fmt.Sprintf("%s every %gpx", cfg.Canvas.BackgroundColor, cfg.Canvas.BackgroundGap))
			con.field("controls", string(cfg.Canvas.ControlsOverlay().Corner()))
			con.field("render size", fmt.Sprintf("%dx%d", cfg.Render.Width, cfg.Render.Height))
			con.field("render format", cfg.Render.Format)
			con.field("serve addr", cfg.Serve.Addr)
			con.field("serve reload", fmt.Sprint(cfg.Serve.Reload))
			return nil
		},
	}
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with the default values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = config.Path()
			}
			if _, err := os.Stat(path); err == nil && !force {
				console{cmd.OutOrStdout()}.warn("%s already exists (use --force to overwrite)", path)
				return nil
			}
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			con := console{cmd.OutOrStdout()}
			con.ok("Wrote default config")
			con.file(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
