package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/treeflow/pkg/errors"
)

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.yaml", "nested/c.toml", "nested/notes.txt"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	p := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"plain", []string{p("a.json")}, []string{p("a.json")}},
		{"plain missing kept", []string{p("missing.json")}, []string{p("missing.json")}},
		{"star", []string{p("*.json")}, []string{p("a.json")}},
		{"doublestar", []string{p("**/*.{json,yaml,toml,txt}")}, []string{p("a.json"), p("b.yaml"), p("nested/c.toml")}},
		{"dedupe", []string{p("a.json"), p("*.json")}, []string{p("a.json")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandInputs(tt.args)
			if err != nil {
				t.Fatalf("expandInputs() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expandInputs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandInputsNoMatch(t *testing.T) {
	_, err := expandInputs([]string{filepath.Join(t.TempDir(), "*.yaml")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expandInputs() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
