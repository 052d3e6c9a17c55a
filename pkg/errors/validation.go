package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// maxIDLength bounds node, edge and handle ids read from documents.
const maxIDLength = 128

// ValidateID checks an id read from a tree document. Ids are joined with
// ':' and '-' to build handle keys and edge ids, so they must be non-empty
// printable text without ':'.
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "%s id cannot be empty", kind)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidDocument, "%s id too long (max %d characters)", kind, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "%s id %q contains control characters", kind, id)
		}
	}
	if strings.Contains(id, ":") {
		return New(ErrCodeInvalidDocument, "%s id %q cannot contain ':'", kind, id)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateDocumentPath checks that path names a file with one of the
// given extensions and returns the extension without the dot.
func ValidateDocumentPath(path string, exts ...string) (string, error) {
	if path == "" {
		return "", New(ErrCodeInvalidInput, "document path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return "", New(ErrCodeInvalidInput, "document path contains invalid characters")
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "", New(ErrCodeInvalidFormat, "document %s has no extension (want one of %s)", filepath.Base(path), strings.Join(exts, ", "))
	}
	if !slices.Contains(exts, ext) {
		return "", New(ErrCodeInvalidFormat, "unsupported document extension %q (want one of %s)", ext, strings.Join(exts, ", "))
	}
	return ext, nil
}

// ValidateNodeType checks that typ is one of the registered node types.
func ValidateNodeType(typ string, known ...string) error {
	if !slices.Contains(known, typ) {
		return New(ErrCodeInvalidNodeType, "unknown node type %q", typ)
	}
	return nil
}
