package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/matzehuels/treeflow/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"canceled", context.Canceled, 130},
		{"wrapped cancel", fmt.Errorf("render: %w", context.Canceled), 130},
		{"invalid input", errors.New(errors.ErrCodeInvalidInput, "bad"), 2},
		{"invalid format", errors.New(errors.ErrCodeInvalidFormat, "bad"), 2},
		{"missing file", errors.New(errors.ErrCodeFileNotFound, "gone"), 2},
		{"invalid document", errors.New(errors.ErrCodeInvalidDocument, "broken"), 1},
		{"plain", fmt.Errorf("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
