package constant

import (
	"fmt"
	"strings"

	"reflect360-be/pkg/mapstate"
)

const (
	// Appended to the transcript whenever the AI call fails, whatever the cause.
	DialogueApologyText = "I'm sorry, I wasn't able to respond just now. Please try again in a moment."

	DialogueSystemPromptV1 = `You are a thoughtful coaching assistant guiding a user through an Immunity Map, a structured self-reflection exercise with four columns:

1. Improvement goal - the one change the user most wants to make.
2. Doing / not doing instead - concrete behaviors working against that goal.
3. Hidden competing commitments - the worries behind those behaviors and the self-protective commitments they reveal.
4. Big assumptions - the beliefs that make those commitments feel necessary.

Rules:
- Ask one open question at a time. Never lecture.
- Ground every question in what the user has already written.
- Gently move the user down the columns in order, but follow their energy.
- Never diagnose, judge, or give advice unless asked directly.

Respond ONLY with a JSON object of the form {"text": "<your reply>", "focusedColumn": <1-4>} where focusedColumn is the column your question is steering toward. No other output.`
)

// InsightPrompt builds the per-column analysis prompt. Column 5 asks for a
// whole-map summary instead of a single-slot reading.
func InsightPrompt(columnId int, m *mapstate.MapData) string {
	var b strings.Builder
	b.WriteString("You are an expert in the Immunity to Change method. Here is a user's current Immunity Map:\n\n")
	b.WriteString(fmt.Sprintf("Improvement goal: %s\n", m.Goal))
	b.WriteString(fmt.Sprintf("Behaviors working against it: %s\n", strings.Join(m.Behaviors, "; ")))
	b.WriteString(fmt.Sprintf("Worries: %s\n", m.HiddenCommitments.Worries))
	b.WriteString(fmt.Sprintf("Hidden competing commitments: %s\n", m.HiddenCommitments.Commitments))
	b.WriteString(fmt.Sprintf("Big assumptions: %s\n\n", m.BigAssumptions))

	switch columnId {
	case mapstate.ColumnGoal:
		b.WriteString("Reflect on the improvement goal. Is it framed as a change in the user's own behavior? What would make it more concrete and more personally meaningful? Answer in 3-5 sentences of plain text addressed to the user.")
	case mapstate.ColumnBehaviors:
		b.WriteString("Reflect on the listed behaviors. Which of them most directly undermines the goal, and what pattern do they share? Answer in 3-5 sentences of plain text addressed to the user.")
	case mapstate.ColumnCommitments:
		b.WriteString("Reflect on the worries and hidden commitments. What is the user protecting themselves from, and how does that protection conflict with the goal? Answer in 3-5 sentences of plain text addressed to the user.")
	case mapstate.ColumnAssumptions:
		b.WriteString("Reflect on the big assumptions. How might the user safely test one of them? Answer in 3-5 sentences of plain text addressed to the user.")
	default:
		b.WriteString("Write a short summary of this whole map: the core tension between the goal and the hidden commitments, and one suggested first experiment. Answer in one paragraph of plain text addressed to the user.")
	}
	return b.String()
}
