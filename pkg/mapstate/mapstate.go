// Package mapstate holds the structured reflection state ("immunity map")
// shared by the reflection tool: four fixed slots, a dialogue transcript and
// the per-slot insights cache.
package mapstate

import "strings"

// Column identifiers for the four map slots plus the whole-map summary.
const (
	ColumnGoal        = 1
	ColumnBehaviors   = 2
	ColumnCommitments = 3
	ColumnAssumptions = 4
	ColumnSummary     = 5
)

// HiddenCommitments is the paired content of slot 3.
type HiddenCommitments struct {
	Worries     string `json:"worries"`
	Commitments string `json:"commitments"`
}

// MapData is the structured reflection state. All four slots are always
// present after a load; zero values mean "not filled in yet".
type MapData struct {
	Goal              string            `json:"goal"`
	Behaviors         []string          `json:"behaviors"`
	HiddenCommitments HiddenCommitments `json:"hiddenCommitments"`
	BigAssumptions    string            `json:"bigAssumptions"`
}

// NewMapData returns an empty map with all slots initialized.
func NewMapData() MapData {
	return MapData{Behaviors: []string{}}
}

// Normalize guarantees the all-slots-present invariant on a decoded value.
func (m *MapData) Normalize() {
	if m.Behaviors == nil {
		m.Behaviors = []string{}
	}
}

// Sender tags for transcript turns.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Turn is one message in the dialogue transcript.
type Turn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Transcript is the append-only ordered dialogue history. It is persisted in
// full on every change and grows unboundedly.
type Transcript []Turn

// Append returns a new transcript with the turn added. The receiver is never
// mutated in place.
func (t Transcript) Append(turn Turn) Transcript {
	out := make(Transcript, len(t), len(t)+1)
	copy(out, t)
	return append(out, turn)
}

// Insights maps a column id to the latest AI analysis text for that column.
// An empty string marks a request in flight; entries are overwritten, never
// appended.
type Insights map[int]string

// NewInsights returns an empty insights cache.
func NewInsights() Insights {
	return Insights{}
}

// SplitEntries turns a newline-delimited string into trimmed, non-blank
// entries. Used both by the legacy decoder and the slot editor commit path.
func SplitEntries(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// FilterBlank drops empty and whitespace-only entries, preserving order.
func FilterBlank(entries []string) []string {
	out := []string{}
	for _, e := range entries {
		if strings.TrimSpace(e) != "" {
			out = append(out, e)
		}
	}
	return out
}
