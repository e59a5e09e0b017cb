package ymj

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	kiterrors "github.com/Aman-CERP/ymjkit/internal/errors"
)

// headerFence is the three-character marker opening and closing the header.
const headerFence = "---"

// footerPattern matches the first fenced JSON code block after the header:
// opening marker with language tag, newline, non-greedy multi-line body,
// closing marker.
var footerPattern = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n```")

// Parse decodes a YMJ byte stream into a Document.
//
// Header framing failures return a format error (missing fence, unclosed
// fence, invalid or non-mapping YAML). Footer extraction is best-effort: a
// footer block that fails to decode is recorded on Document.FooterErr and
// the Document is returned with Footer nil, so callers decide whether the
// broken block matters.
func Parse(data []byte) (*Document, error) {
	s := string(data)

	if !strings.HasPrefix(s, headerFence) {
		return nil, kiterrors.New(kiterrors.ErrCodeMissingHeader,
			"Missing YAML header (must start with ---)", nil)
	}

	end := strings.Index(s[len(headerFence):], headerFence)
	if end < 0 {
		return nil, kiterrors.New(kiterrors.ErrCodeUnclosedHeader,
			"Unclosed YAML header (missing closing ---)", nil)
	}
	end += len(headerFence)

	headerSrc := strings.TrimSpace(s[len(headerFence):end])

	var raw any
	if err := yaml.Unmarshal([]byte(headerSrc), &raw); err != nil {
		return nil, kiterrors.New(kiterrors.ErrCodeInvalidHeader,
			fmt.Sprintf("Invalid YAML: %v", err), err)
	}
	header, ok := raw.(map[string]any)
	if !ok {
		return nil, kiterrors.New(kiterrors.ErrCodeInvalidHeader,
			"YAML header must be a mapping (dictionary)", nil)
	}

	rest := s[end+len(headerFence):]
	doc := &Document{Header: header}

	loc := footerPattern.FindStringSubmatchIndex(rest)
	if loc == nil {
		doc.Content = strings.TrimSpace(rest)
		return doc, nil
	}

	doc.Content = strings.TrimSpace(rest[:loc[0]])

	var footer Footer
	if err := json.Unmarshal([]byte(rest[loc[2]:loc[3]]), &footer); err != nil {
		doc.FooterErr = kiterrors.New(kiterrors.ErrCodeFooterDecode,
			fmt.Sprintf("Invalid JSON in footer: %v", err), err)
		return doc, nil
	}
	doc.Footer = &footer

	return doc, nil
}

// Serialize encodes a Document back to bytes.
//
// Layout: opening fence, YAML header (yaml.v3 key ordering, stable across
// runs), closing fence, blank line, content, and when a footer is present a
// blank line plus a fenced JSON block with 2-space indentation. The output
// re-parses to an equivalent Document.
func Serialize(doc *Document) ([]byte, error) {
	headerYAML, err := yaml.Marshal(doc.Header)
	if err != nil {
		return nil, kiterrors.Wrap(kiterrors.ErrCodeInternal, err)
	}

	var buf bytes.Buffer
	buf.WriteString(headerFence + "\n")
	buf.Write(headerYAML)
	buf.WriteString(headerFence + "\n\n")
	buf.WriteString(doc.Content)

	if doc.Footer == nil {
		buf.WriteString("\n")
		return buf.Bytes(), nil
	}

	blob, err := json.MarshalIndent(doc.Footer, "", "  ")
	if err != nil {
		return nil, kiterrors.Wrap(kiterrors.ErrCodeInternal, err)
	}
	buf.WriteString("\n\n```json\n")
	buf.Write(blob)
	buf.WriteString("\n```\n")

	return buf.Bytes(), nil
}
