package io

import (
	"encoding/json"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treeflow/pkg/decision"
	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/flow"
)

// WriteTreeJSON encodes t as indented JSON.
func WriteTreeJSON(t decision.Tree, w io.Writer) error {
	return WriteTree(t, w, FormatJSON)
}

// WriteTree encodes t in format f. The output can be read back with
// [ReadTree].
func WriteTree(t decision.Tree, w io.Writer, f Format) error {
	if t.Nodes == nil {
		t.Nodes = []decision.Node{}
	}
	if t.Edges == nil {
		t.Edges = []flow.Edge{}
	}
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(t)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(t)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(t); err == nil {
			err = enc.Close()
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", f)
	}
	return nil
}
