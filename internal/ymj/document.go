// Package ymj implements the YMJ document format: a YAML metadata header,
// free-form narrative content, and an optional trailing JSON index block
// carrying a precomputed embedding vector, all in one text file.
//
// The file itself is the unit of storage and the unit of truth. The index
// block is derived data: a cache of an embedding computed from a snapshot of
// header+content, never authoritative for either.
package ymj

import (
	"path/filepath"
	"strings"
)

// Ext is the recognized file extension for YMJ documents.
const Ext = ".ymj"

// SchemaVersion is the current index footer schema version.
const SchemaVersion = 1

// Document is a parsed YMJ file.
type Document struct {
	// Header is the YAML metadata mapping. Always present after a
	// successful Parse. Required keys: doc_type, title. Optional: tags.
	Header map[string]any

	// Content is the narrative body, trimmed of surrounding whitespace.
	Content string

	// Footer is the decoded JSON index block, nil when the file has no
	// footer block or the block failed to decode.
	Footer *Footer

	// FooterErr records the decode error for a footer-looking block that
	// did not parse as JSON. The embed path treats this as "no footer";
	// validation surfaces it as an error. Nil when no block exists or it
	// decoded cleanly.
	FooterErr error
}

// Footer is the JSON index block appended after the narrative content.
// Fields are pointers so that a missing key is distinguishable from a
// zero value during validation.
type Footer struct {
	Schema *int        `json:"schema,omitempty"`
	Index  *IndexEntry `json:"index,omitempty"`
}

// IndexEntry holds the derived index data: snapshots of title and tags at
// embed time, plus the embedding vector.
type IndexEntry struct {
	Tags      []string  `json:"tags"`
	Title     string    `json:"title"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// NewFooter builds a schema-1 footer from an embed pass.
func NewFooter(title string, tags []string, embedding []float32) *Footer {
	if tags == nil {
		tags = []string{}
	}
	schema := SchemaVersion
	return &Footer{
		Schema: &schema,
		Index: &IndexEntry{
			Tags:      tags,
			Title:     title,
			Embedding: embedding,
		},
	}
}

// DocType returns the header doc_type value, if present and a string.
func (d *Document) DocType() (string, bool) {
	s, ok := d.Header["doc_type"].(string)
	return s, ok
}

// Title returns the header title value, if present and a string.
func (d *Document) Title() (string, bool) {
	s, ok := d.Header["title"].(string)
	return s, ok
}

// Tags returns the header tags as strings. Non-string entries are skipped.
// Returns nil when the header has no tags key.
func (d *Document) Tags() []string {
	raw, ok := d.Header["tags"].([]any)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

// HasFooterBlock reports whether the file contained a footer-looking JSON
// block, regardless of whether it decoded.
func (d *Document) HasFooterBlock() bool {
	return d.Footer != nil || d.FooterErr != nil
}

// Embedding returns the stored embedding vector, or nil when the document
// has no footer, no index entry, or no embedding.
func (d *Document) Embedding() []float32 {
	if d.Footer == nil || d.Footer.Index == nil {
		return nil
	}
	return d.Footer.Index.Embedding
}

// HasEmbedding reports whether a stored embedding is present.
func (d *Document) HasEmbedding() bool {
	return d.Embedding() != nil
}

// IsYMJ reports whether the path carries the recognized extension.
func IsYMJ(path string) bool {
	return filepath.Ext(path) == Ext
}

// Stem returns the file name without directory or extension, used as the
// index title fallback when the header has no title.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
