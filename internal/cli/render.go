package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeflow/pkg/cache"
	"github.com/matzehuels/treeflow/pkg/config"
	"github.com/matzehuels/treeflow/pkg/decision"
	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/flow"
	"github.com/matzehuels/treeflow/pkg/render"
	"github.com/matzehuels/treeflow/pkg/render/nodelink"
	"github.com/matzehuels/treeflow/pkg/render/sink"
	"github.com/matzehuels/treeflow/pkg/term"
)

// renderOpts holds everything needed to turn a tree into output bytes.
type renderOpts struct {
	format   string
	width    int
	height   int
	detailed bool // body lines in graphviz labels
	metrics  term.Metrics
	bg       flow.Background
	controls flow.Controls
	cache    cache.Cache // graphviz output; nil disables caching
	logger   *log.Logger // non-fatal failures; nil discards them
}

// renderOptsFrom fills renderOpts from the configuration.
func renderOptsFrom(cfg *config.Config) renderOpts {
	return renderOpts{
		format:   cfg.Render.Format,
		width:    cfg.Render.Width,
		height:   cfg.Render.Height,
		metrics:  term.Metrics{CellWidth: cfg.Canvas.CellWidth, CellHeight: cfg.Canvas.CellHeight},
		bg:       cfg.Canvas.Background(),
		controls: cfg.Canvas.ControlsOverlay(),
	}
}

// outputExt maps a render format to the file suffix written by default.
var outputExt = map[string]string{
	config.FormatSVG:      ".svg",
	config.FormatDOT:      ".dot",
	config.FormatGraphviz: ".gv.svg",
	config.FormatJSON:     ".layout.json",
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		format   string
		width    int
		height   int
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "render [file|pattern]...",
		Short: "Render decision trees to SVG, DOT or layout JSON",
		Long: `Render decision tree documents (.json, .toml, .yaml) without opening the editor.

Formats:
  svg       canvas drawing with hand-placed positions (default)
  dot       Graphviz DOT source
  graphviz  SVG laid out by Graphviz
  json      resolved canvas geometry

Arguments may be glob patterns, including ** (quote them to keep the shell
from expanding them). Without a file, the built-in sample tree is rendered.
Without -o, output goes next to each input file, or to stdout for the sample
tree.`,
		Example: `  treeflow render examples/trees/login.json
  treeflow render -f graphviz 'examples/**/*.yaml'
  treeflow render -f dot -o - tree.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := renderOptsFrom(c.settings())
			if cmd.Flags().Changed("format") {
				opts.format = format
			}
			if cmd.Flags().Changed("width") {
				opts.width = width
			}
			if cmd.Flags().Changed("height") {
				opts.height = height
			}
			opts.detailed = detailed
			if err := errors.ValidateFormat(opts.format, config.Formats...); err != nil {
				return err
			}

			inputs, err := expandInputs(args)
			if err != nil {
				return err
			}
			if len(inputs) > 1 && output != "" {
				return errors.New(errors.ErrCodeInvalidInput, "-o cannot be used with %d inputs", len(inputs))
			}

			if opts.format == config.FormatGraphviz {
				opts.cache = c.newCache(noCache)
				opts.logger = c.Logger
				defer opts.cache.Close()
			}
			con := console{cmd.OutOrStdout()}
			if len(inputs) == 0 {
				return c.runRender(cmd.Context(), con, "", output, opts)
			}
			for _, input := range inputs {
				if err := c.runRender(cmd.Context(), con, input, output, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (- for stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", config.FormatSVG, "output format: "+strings.Join(config.Formats, ", "))
	cmd.Flags().IntVar(&width, "width", 0, "minimum frame width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "minimum frame height in pixels")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include node body text in graphviz labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "re-run graphviz even if a cached render exists")
	cmd.ValidArgsFunction = completeDocuments
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, con console, input, output string, opts renderOpts) error {
	t, err := c.loadTree(ctx, input)
	if err != nil {
		return err
	}

	var sp *spinner
	if opts.format == config.FormatGraphviz {
		sp = startSpinner(ctx, os.Stderr, "Running graphviz...")
	}
	data, err := renderTree(ctx, t, opts)
	if sp != nil {
		sp.stop()
	}
	if err != nil {
		return err
	}
	c.Logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := outputPath(output, input, opts.format)
	if path == "" {
		_, err := con.w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	con.ok("Rendered %s", opts.format)
	con.file(path)
	return nil
}

// outputPath picks where rendered output goes. An empty result means stdout.
func outputPath(output, input, format string) string {
	switch {
	case output == "-":
		return ""
	case output != "":
		return output
	case input == "":
		return ""
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + outputExt[format]
}

// renderTree produces the bytes for one tree in one format.
func renderTree(ctx context.Context, t decision.Tree, opts renderOpts) ([]byte, error) {
	props := treeProps(t)

	switch opts.format {
	case config.FormatSVG, "":
		f := render.Capture(props, render.Options{Width: opts.width, Height: opts.height, Metrics: opts.metrics})
		return sink.RenderSVG(f, sink.WithBackground(opts.bg), sink.WithControls(opts.controls)), nil
	case config.FormatJSON:
		f := render.Capture(props, render.Options{Width: opts.width, Height: opts.height, Metrics: opts.metrics})
		return sink.RenderJSON(f)
	case config.FormatDOT:
		return []byte(nodelink.ToDOT(props, nodelink.Options{Detailed: opts.detailed})), nil
	case config.FormatGraphviz:
		return renderGraphviz(ctx, nodelink.ToDOT(props, nodelink.Options{Detailed: opts.detailed}), opts)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", opts.format)
}

// renderGraphviz lays out dot with Graphviz, consulting opts.cache first
// when set. Cache failures are logged and fall through to a fresh render.
func renderGraphviz(ctx context.Context, dot string, opts renderOpts) ([]byte, error) {
	c := opts.cache
	var key string
	if c != nil {
		key = cache.ArtifactKey(config.FormatGraphviz, []byte(dot))
		data, ok, err := c.Get(ctx, key)
		switch {
		case err != nil:
			opts.debug("cache read failed", "key", key, "err", err)
		case ok:
			return data, nil
		}
	}
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "graphviz")
	}
	if c != nil {
		if err := c.Set(ctx, key, svg, 0); err != nil {
			opts.debug("cache write failed", "key", key, "err", err)
		}
	}
	return svg, nil
}

func (o renderOpts) debug(msg string, keyvals ...any) {
	if o.logger != nil {
		o.logger.Debug(msg, keyvals...)
	}
}

// formatContentType maps a render format to its HTTP content type.
func formatContentType(format string) string {
	switch format {
	case config.FormatSVG, config.FormatGraphviz:
		return "image/svg+xml"
	case config.FormatJSON:
		return "application/json"
	}
	return "text/vnd.graphviz; charset=utf-8"
}
