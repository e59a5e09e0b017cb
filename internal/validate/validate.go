// Package validate checks YMJ structural invariants without touching the
// embedding provider. Validation never panics and never aborts a batch: a
// malformed document yields an ordered error list for that file and the
// run continues.
package validate

import (
	"fmt"
	"os"

	kiterrors "github.com/Aman-CERP/ymjkit/internal/errors"
	"github.com/Aman-CERP/ymjkit/internal/ymj"
)

// Report is the validation outcome for one file.
type Report struct {
	Path   string
	Errors []string
}

// Valid reports whether the file passed every check.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// Bytes validates a document's raw bytes. The returned messages are in
// check order; an empty slice means valid.
//
// Fence-level failures (no header fence, unclosed fence) stop further
// checks: nothing after them is parseable. Later checks accumulate.
// Strict mode additionally requires a present, well-formed embedding.
func Bytes(data []byte, strict bool) []string {
	doc, err := ymj.Parse(data)
	if err != nil {
		// All header failures are terminal for this document.
		return []string{kiterrors.UserMessage(err)}
	}

	var errs []string

	if _, ok := doc.Header["doc_type"]; !ok {
		errs = append(errs, "Missing required field: doc_type")
	}
	if _, ok := doc.Header["title"]; !ok {
		errs = append(errs, "Missing required field: title")
	}

	switch {
	case doc.FooterErr != nil:
		errs = append(errs, kiterrors.UserMessage(doc.FooterErr))
	case doc.Footer != nil:
		if doc.Footer.Schema == nil {
			errs = append(errs, "JSON index missing 'schema' field")
		}
		if doc.Footer.Index == nil {
			errs = append(errs, "JSON index missing 'index' field")
		} else if doc.Footer.Index.Embedding == nil && strict {
			errs = append(errs, "JSON index missing embedding (strict mode)")
		}
	case strict:
		errs = append(errs, "Missing JSON index block (strict mode)")
	}

	return errs
}

// File validates a document on disk.
func File(path string, strict bool) Report {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{
			Path:   path,
			Errors: []string{fmt.Sprintf("Cannot read file: %v", err)},
		}
	}
	return Report{Path: path, Errors: Bytes(data, strict)}
}
