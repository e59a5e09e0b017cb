package updater

import (
	"fmt"

	"github.com/gofrs/flock"
	"github.com/google/renameio"

	kiterrors "github.com/Aman-CERP/ymjkit/internal/errors"
)

// writeAtomic replaces the file at path with data.
//
// An advisory flock on the target serializes ymjkit writers on the same
// path across processes; the write itself goes through a temp file in the
// same directory and an atomic rename, so readers never observe a partial
// document.
func writeAtomic(path string, data []byte) error {
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return kiterrors.Wrap(kiterrors.ErrCodeFileWrite, err)
	}
	if !locked {
		return kiterrors.New(kiterrors.ErrCodeFileLocked,
			fmt.Sprintf("%s is being written by another process", path), nil).
			WithSuggestion("wait for the other ymjkit run to finish")
	}
	defer func() { _ = fl.Unlock() }()

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return kiterrors.Wrap(kiterrors.ErrCodeFileWrite, err)
	}
	return nil
}
