package export

import (
	"fmt"
	"time"
)

// Compose renders the feedback report for userName and converts it to a DOCX
// binary. Deterministic for identical inputs apart from the embedded
// generation timestamp. analysis may be nil, in which case the analysis
// section is omitted entirely; responses are rendered in the order given.
func Compose(userName string, analysis *Analysis, responses []Response) (*Result, error) {
	html, err := RenderReportHTML(TemplateData{
		UserName:    userName,
		GeneratedAt: time.Now(),
		Analysis:    analysis,
		Responses:   responses,
	})
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	return exportDOCX(html, userName)
}
