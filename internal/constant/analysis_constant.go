package constant

import (
	"fmt"
	"strings"

	"reflect360-be/internal/entity"
)

// AnalysisPrompt turns the collected feedback into a structured analysis
// request. The model must answer with a single JSON object so the service
// can decode it into entity.AnalysisResult.
func AnalysisPrompt(responses []*entity.FeedbackResponse) string {
	var b strings.Builder
	b.WriteString("You are an executive coach analyzing anonymous 360-degree feedback. Each entry answers two questions: (1) what should this person change, and (2) what concrete actions should they take.\n\n")

	for i, r := range responses {
		b.WriteString(fmt.Sprintf("Entry %d (relationship: %s)\n", i+1, r.Relationship))
		b.WriteString(fmt.Sprintf("  What to change: %s\n", r.QChange))
		b.WriteString(fmt.Sprintf("  Suggested actions: %s\n\n", r.QActions))
	}

	b.WriteString(`Respond ONLY with a JSON object of the form:
{"summary": "<2-3 sentence overall summary>", "themes": ["<theme>", ...], "per_group": {"<relationship>": "<1-2 sentences on what that group emphasized>"}, "advice": "<one paragraph of prioritized, actionable advice>"}
Only include relationship groups that actually appear in the entries. No other output.`)
	return b.String()
}
