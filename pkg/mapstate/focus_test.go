package mapstate

import "testing"

func TestDetectFocus(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  int
	}{
		{"goal keyword", "Let's refine your goal a little.", ColumnGoal},
		{"behavior keyword", "Which behavior shows up most often?", ColumnBehaviors},
		{"british spelling", "Is that behaviour new?", ColumnBehaviors},
		{"worry keyword", "What are you worried might happen?", ColumnCommitments},
		{"assumption keyword", "That sounds like a big assumption.", ColumnAssumptions},
		{"no match defaults to goal", "Tell me more about that.", ColumnGoal},
		{"goal wins over later columns", "Does this goal connect to the assumption?", ColumnGoal},
		{"case insensitive", "WHAT DO YOU FEAR?", ColumnCommitments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFocus(tt.reply); got != tt.want {
				t.Errorf("DetectFocus(%q) = %d, want %d", tt.reply, got, tt.want)
			}
		})
	}
}

func TestValidColumn(t *testing.T) {
	if ValidColumn(0) || ValidColumn(5) {
		t.Error("0 and 5 are not map slots")
	}
	if !ValidColumn(ColumnGoal) || !ValidColumn(ColumnAssumptions) {
		t.Error("slots 1-4 must be valid")
	}
	if !ValidInsightColumn(ColumnSummary) {
		t.Error("summary pseudo-column must be a valid insight target")
	}
	if ValidInsightColumn(6) {
		t.Error("6 is not an insight target")
	}
}
