package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/treeflow/pkg/config"
	"github.com/matzehuels/treeflow/pkg/decision"
	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/observability"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"completion", "config", "edit", "palette", "render", "serve"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRenderCommandWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tree.dot")
	if err := execute(t, "render", "-f", "dot", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") {
		t.Errorf("output = %.40q, want DOT", data)
	}
}

func TestRenderCommandNextToInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "login.json")
	writeTree(t, in, decision.SampleTree())

	if err := execute(t, "render", in); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "login.svg")); err != nil {
		t.Errorf("login.svg not written: %v", err)
	}
}

func TestRenderCommandPattern(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, filepath.Join(dir, "a.json"), decision.SampleTree())
	writeTree(t, filepath.Join(dir, "sub", "b.json"), decision.SampleTree())

	if err := execute(t, "render", "-f", "dot", filepath.Join(dir, "**", "*.json")); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range []string{"a.dot", filepath.Join("sub", "b.dot")} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown format", []string{"render", "-f", "pdf"}, errors.ErrCodeInvalidFormat},
		{"missing document", []string{"render", "nope.json"}, errors.ErrCodeFileNotFound},
		{"unknown extension", []string{"render", "tree.xml"}, errors.ErrCodeInvalidFormat},
		{"missing explicit config", []string{"--config", "/nonexistent/treeflow.toml", "palette"}, errors.ErrCodeFileNotFound},
		{"output with many inputs", []string{"render", "-o", "out.svg", "a.json", "b.json"}, errors.ErrCodeInvalidInput},
		{"pattern without matches", []string{"render", "/nonexistent/**/*.yaml"}, errors.ErrCodeFileNotFound},
		{"edit bad print format", []string{"edit", "--print", "xml"}, errors.ErrCodeInvalidFormat},
		{"reload without document", []string{"serve", "--reload"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestEditNeedsTerminal(t *testing.T) {
	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = orig })

	if err := execute(t, "edit"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("edit error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := execute(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Serve.Addr != config.Default().Serve.Addr {
		t.Errorf("Serve.Addr = %q, want default", cfg.Serve.Addr)
	}
	if err := execute(t, "--config", path, "config", "show"); err != nil {
		t.Errorf("config show: %v", err)
	}
}

func TestPaletteTable(t *testing.T) {
	out := paletteTable(decision.PaletteItems())
	for _, want := range []string{"ID", "condition", "component-delay", "条件判断"} {
		if !strings.Contains(out, want) {
			t.Errorf("paletteTable() missing %q", want)
		}
	}
	if got := accentOf(decision.PaletteItem{NodeType: decision.KindCondition}); got != decision.ConditionAccent {
		t.Errorf("accentOf(condition) = %q, want %q", got, decision.ConditionAccent)
	}
}
