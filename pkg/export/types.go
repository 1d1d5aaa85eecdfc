// Package export composes the downloadable feedback report: an HTML render of
// the collected responses (plus the AI analysis when available) converted to a
// DOCX binary. Purely a local transform; no network or storage side effects.
package export

import (
	"errors"
	"time"
)

// Analysis is the AI-derived view of the collected feedback. A nil Analysis
// omits the whole analysis section from the document.
type Analysis struct {
	Summary  string
	Themes   []string
	PerGroup map[string]string // relationship group -> note
	Advice   string
}

// Response is one anonymous feedback entry, in the order the store returned
// them (newest first).
type Response struct {
	Relationship string
	QChange      string
	QActions     string
	SubmittedAt  time.Time
}

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

// ErrDOCXDependencyMissing indicates DOCX export runtime dependencies are
// unavailable.
var ErrDOCXDependencyMissing = errors.New("export docx dependency missing")
