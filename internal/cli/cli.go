// Package cli implements the treeflow command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeflow/pkg/buildinfo"
	"github.com/matzehuels/treeflow/pkg/cache"
	"github.com/matzehuels/treeflow/pkg/config"
	"github.com/matzehuels/treeflow/pkg/decision"
	"github.com/matzehuels/treeflow/pkg/flow"
	treeio "github.com/matzehuels/treeflow/pkg/io"
	"github.com/matzehuels/treeflow/pkg/observability"
	"github.com/matzehuels/treeflow/pkg/term"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "treeflow"

// skipConfigAnnotation marks commands that run without loading the config
// file, such as the one that creates it.
const skipConfigAnnotation = "treeflow/skip-config"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Treeflow edits and renders decision-tree diagrams",
		Long:          `Treeflow is a node-graph canvas for decision trees: edit them in the terminal, render them to SVG or Graphviz, or serve a live preview.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetCanvasHooks(newLogHooks(c.Logger))
			if cmd.Annotations[skipConfigAnnotation] != "" {
				return nil
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")

	root.AddCommand(c.editCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// settings returns the loaded configuration, or the defaults before
// PersistentPreRunE has run.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// metrics returns the terminal cell size from the configuration.
func (c *CLI) metrics() term.Metrics {
	cv := c.settings().Canvas
	return term.Metrics{CellWidth: cv.CellWidth, CellHeight: cv.CellHeight}
}

// newCache opens the on-disk render cache. Any failure degrades to a
// cache that never hits.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cache.Dir()
	if err != nil {
		c.Logger.Debug("No cache directory", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("Render cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Tree Loading
// =============================================================================

// loadTree reads the tree document at path, or returns the sample tree
// when path is empty.
func (c *CLI) loadTree(ctx context.Context, path string) (decision.Tree, error) {
	if path == "" {
		c.Logger.Debug("No document given, using the sample tree")
		return decision.SampleTree(), nil
	}
	prog := newProgress(c.Logger)
	t, err := treeio.ImportTree(path)
	if err != nil {
		return decision.Tree{}, err
	}
	if err := ctx.Err(); err != nil {
		return decision.Tree{}, err
	}
	prog.done(fmtTreeStats(path, t))
	return t, nil
}

// treeProps builds static canvas props for a tree.
func treeProps(t decision.Tree) flow.Props[decision.TreeNodeData] {
	return flow.Props[decision.TreeNodeData]{
		Nodes:     t.Nodes,
		Edges:     t.Edges,
		NodeTypes: decision.NodeTypes(),
	}
}
