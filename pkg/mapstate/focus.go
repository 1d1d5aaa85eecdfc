package mapstate

import "strings"

// focusRule pairs a column with the keywords that hint at it. Rules are
// checked in order and the first match wins; the goal column doubles as the
// default when nothing matches.
type focusRule struct {
	column   int
	keywords []string
}

var focusRules = []focusRule{
	{ColumnGoal, []string{"goal", "improvement objective", "improve"}},
	{ColumnBehaviors, []string{"behavior", "behaviour", "doing instead", "working against"}},
	{ColumnCommitments, []string{"hidden commitment", "competing commitment", "worry", "worried", "fear"}},
	{ColumnAssumptions, []string{"big assumption", "assumption", "assume"}},
}

// DetectFocus scans a reply for slot-name keywords and returns the column the
// reply appears to address. This is the fallback classifier used when the
// model response carries no structured focus hint.
func DetectFocus(reply string) int {
	lower := strings.ToLower(reply)
	for _, rule := range focusRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.column
			}
		}
	}
	return ColumnGoal
}

// ValidColumn reports whether id names one of the four map slots.
func ValidColumn(id int) bool {
	return id >= ColumnGoal && id <= ColumnAssumptions
}

// ValidInsightColumn additionally allows the whole-map summary pseudo-column.
func ValidInsightColumn(id int) bool {
	return id >= ColumnGoal && id <= ColumnSummary
}
