package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/treeflow/pkg/errors"
	treeio "github.com/matzehuels/treeflow/pkg/io"
)

// expandInputs resolves document arguments into file paths. Arguments with
// glob characters are expanded with ** support and filtered to tree
// documents; plain paths are kept as given. Duplicates are dropped.
func expandInputs(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		if !containsGlob(arg) {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad pattern %q", arg)
		}
		slices.Sort(matches)
		n := 0
		for _, m := range matches {
			if _, err := treeio.FormatFromPath(m); err != nil {
				continue
			}
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			add(m)
			n++
		}
		if n == 0 {
			return nil, errors.New(errors.ErrCodeFileNotFound, "no tree documents match %q", arg)
		}
	}
	return paths, nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
