package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treeflow/pkg/decision"
	"github.com/matzehuels/treeflow/pkg/errors"
)

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Extensions lists the file extensions [FormatFromPath] accepts.
var Extensions = []string{"json", "toml", "yaml", "yml"}

// FormatFromPath picks the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext, err := errors.ValidateDocumentPath(path, Extensions...)
	if err != nil {
		return "", err
	}
	if ext == "yml" {
		return FormatYAML, nil
	}
	return Format(ext), nil
}

// ReadTree decodes a tree document in format f from r and validates it.
// ReadTree does not close r.
func ReadTree(r io.Reader, f Format) (decision.Tree, error) {
	var t decision.Tree
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&t)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&t)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&t)
		if err == io.EOF {
			err = nil
		}
	default:
		return decision.Tree{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", f)
	}
	if err != nil {
		return decision.Tree{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s", f)
	}
	if err := decision.Validate(t); err != nil {
		return decision.Tree{}, err
	}
	return t, nil
}

// ImportTree reads the tree document at path. The format follows the file
// extension.
func ImportTree(path string) (decision.Tree, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return decision.Tree{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return decision.Tree{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", filepath.Base(path))
		}
		return decision.Tree{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer file.Close()

	t, err := ReadTree(file, f)
	if err != nil {
		return decision.Tree{}, errors.Wrap(errors.GetCode(err), err, "%s", filepath.Base(path))
	}
	return t, nil
}
