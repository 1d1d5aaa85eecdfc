package export

import (
	"strings"
	"testing"
	"time"
)

func sampleResponses() []Response {
	return []Response{
		{Relationship: "peer", QChange: "newest entry", QActions: "act newest", SubmittedAt: time.Now()},
		{Relationship: "manager", QChange: "older entry", QActions: "act older", SubmittedAt: time.Now().Add(-time.Hour)},
	}
}

func TestRenderReportHTMLWithAnalysis(t *testing.T) {
	html, err := RenderReportHTML(TemplateData{
		UserName:    "Dana",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Analysis: &Analysis{
			Summary:  "Overall positive.",
			Themes:   []string{"communication", "delegation"},
			PerGroup: map[string]string{"peer": "peers want more updates"},
			Advice:   "Schedule weekly check-ins.",
		},
		Responses: sampleResponses(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"360 Feedback Report for Dana",
		"Mar 1, 2026",
		"Overall positive.",
		"communication",
		"peers want more updates",
		"Schedule weekly check-ins.",
		"newest entry",
		"older entry",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestRenderReportHTMLNilAnalysisOmitsSection(t *testing.T) {
	html, err := RenderReportHTML(TemplateData{
		UserName:    "Dana",
		GeneratedAt: time.Now(),
		Analysis:    nil,
		Responses:   sampleResponses(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if strings.Contains(html, "AI Analysis") {
		t.Error("analysis section must be omitted when analysis is nil")
	}
	if !strings.Contains(html, "Responses") {
		t.Error("responses section missing")
	}
}

func TestRenderReportHTMLPreservesResponseOrder(t *testing.T) {
	html, err := RenderReportHTML(TemplateData{
		UserName:    "Dana",
		GeneratedAt: time.Now(),
		Responses:   sampleResponses(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	first := strings.Index(html, "newest entry")
	second := strings.Index(html, "older entry")
	if first < 0 || second < 0 || first > second {
		t.Errorf("responses rendered out of order: first=%d second=%d", first, second)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Dana", "Dana-feedback.docx"},
		{"spaces and punctuation", "Dana O'Brien", "Dana_O_Brien-feedback.docx"},
		{"empty", "", "feedback_report-feedback.docx"},
		{"unicode stripped", "Åsa", "_sa-feedback.docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.in); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
