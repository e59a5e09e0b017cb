// Package corpus ranks a directory tree of YMJ documents against a query
// vector. There is no persistent index: each document's stored embedding is
// read from its footer at search time.
package corpus

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"

	kiterrors "github.com/Aman-CERP/ymjkit/internal/errors"
	"github.com/Aman-CERP/ymjkit/internal/ymj"
)

// Walk enumerates every .ymj file under root, recursively. Paths are
// returned sorted so downstream processing is deterministic.
func Walk(ctx context.Context, root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if ymj.IsYMJ(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, kiterrors.New(kiterrors.ErrCodeInvalidPath,
			"failed to walk corpus directory: "+err.Error(), err)
	}

	sort.Strings(paths)
	return paths, nil
}
