package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeflow/pkg/cache"
	"github.com/matzehuels/treeflow/pkg/config"
	"github.com/matzehuels/treeflow/pkg/decision"
	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/render/nodelink"
)

func TestRenderTreeFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{config.FormatSVG, `<marker id="rf-arrow-closed"`},
		{config.FormatDOT, `"root-condition":w -> "guest-message":n`},
		{config.FormatJSON, `"nodes": [`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			opts := renderOptsFrom(config.Default())
			opts.format = tt.format
			data, err := renderTree(context.Background(), decision.SampleTree(), opts)
			if err != nil {
				t.Fatalf("renderTree() error: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("renderTree(%s) missing %q", tt.format, tt.want)
			}
		})
	}
}

func TestRenderTreeUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Width, cfg.Render.Height = 1200, 800
	cfg.Canvas.Controls = "top-right"
	opts := renderOptsFrom(cfg)

	data, err := renderTree(context.Background(), decision.SampleTree(), opts)
	if err != nil {
		t.Fatalf("renderTree() error: %v", err)
	}
	svg := string(data)
	if !strings.Contains(svg, `viewBox="0 0 1200.0 800.0"`) {
		t.Error("frame size from config not applied")
	}
	if !strings.Contains(svg, `data-placement="top-right"`) {
		t.Error("controls placement from config not applied")
	}
}

func TestRenderTreeJSONGeometry(t *testing.T) {
	opts := renderOptsFrom(config.Default())
	opts.format = config.FormatJSON
	data, err := renderTree(context.Background(), decision.SampleTree(), opts)
	if err != nil {
		t.Fatalf("renderTree() error: %v", err)
	}

	var out struct {
		Nodes []struct {
			ID string  `json:"id"`
			X  float64 `json:"x"`
			Y  float64 `json:"y"`
		} `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(out.Nodes) != 5 || len(out.Edges) != 4 {
		t.Fatalf("got %d nodes, %d edges, want 5, 4", len(out.Nodes), len(out.Edges))
	}
	// root-condition at (240,20) snaps to cell (24,1).
	if out.Nodes[0].ID != "root-condition" || out.Nodes[0].X != 240 || out.Nodes[0].Y != 20 {
		t.Errorf("first node = %+v", out.Nodes[0])
	}
}

func TestRenderTreeUnsupported(t *testing.T) {
	opts := renderOptsFrom(config.Default())
	opts.format = "pdf"
	_, err := renderTree(context.Background(), decision.SampleTree(), opts)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("renderTree(pdf) error = %v, want UNSUPPORTED", err)
	}
}

func TestFormatContentType(t *testing.T) {
	tests := map[string]string{
		config.FormatSVG:      "image/svg+xml",
		config.FormatGraphviz: "image/svg+xml",
		config.FormatJSON:     "application/json",
		config.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	}
	for format, want := range tests {
		if got := formatContentType(format); got != want {
			t.Errorf("formatContentType(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestRenderTreeGraphvizCacheHit(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	tree := decision.SampleTree()
	dot := nodelink.ToDOT(treeProps(tree), nodelink.Options{})
	want := []byte("<svg>cached</svg>")
	if err := fc.Set(ctx, cache.ArtifactKey(config.FormatGraphviz, []byte(dot)), want, 0); err != nil {
		t.Fatal(err)
	}

	opts := renderOptsFrom(config.Default())
	opts.format = config.FormatGraphviz
	opts.cache = fc
	got, err := renderTree(ctx, tree, opts)
	if err != nil {
		t.Fatalf("renderTree() error = %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("renderTree() = %q, want cached %q", got, want)
	}
}

// brokenCache fails every read and write.
type brokenCache struct{ sets int }

func (c *brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New(errors.ErrCodeInternal, "read-only disk")
}

func (c *brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	c.sets++
	return errors.New(errors.ErrCodeInternal, "read-only disk")
}

func (c *brokenCache) Delete(context.Context, string) error { return nil }
func (c *brokenCache) Close() error                         { return nil }

func TestRenderTreeGraphvizCacheFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering")
	}
	var buf bytes.Buffer
	bc := &brokenCache{}
	opts := renderOptsFrom(config.Default())
	opts.format = config.FormatGraphviz
	opts.cache = bc
	opts.logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	data, err := renderTree(context.Background(), decision.SampleTree(), opts)
	if err != nil {
		t.Fatalf("renderTree() error = %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Errorf("renderTree() = %.40q, want svg", data)
	}
	if bc.sets != 1 {
		t.Errorf("Set calls = %d, want 1", bc.sets)
	}
	for _, want := range []string{"cache read failed", "cache write failed", "read-only disk"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %q:\n%s", want, buf.String())
		}
	}
}
