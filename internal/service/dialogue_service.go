// FILE: internal/service/dialogue_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"reflect360-be/internal/constant"
	"reflect360-be/internal/dto"
	"reflect360-be/pkg/aicall"
	"reflect360-be/pkg/llm"
	"reflect360-be/pkg/mapstate"

	"github.com/google/uuid"
)

type IDialogueService interface {
	// SendTurn appends the user turn, asks the model for a reply and returns
	// the updated transcript together with the column the reply focuses on.
	SendTurn(ctx context.Context, userId uuid.UUID, req *dto.DialogueRequest) (mapstate.Transcript, int)

	// Busy reports whether a reply for this user is still outstanding.
	Busy(userId uuid.UUID) bool
}

type dialogueService struct {
	reflection   IReflectionService
	llmProvider  llm.LLMProvider
	orchestrator *aicall.Orchestrator
	timeout      time.Duration
}

func NewDialogueService(
	reflection IReflectionService,
	llmProvider llm.LLMProvider,
	orchestrator *aicall.Orchestrator,
	timeout time.Duration,
) IDialogueService {
	if timeout <= 0 {
		timeout = aicall.DialogueTimeout
	}
	return &dialogueService{
		reflection:   reflection,
		llmProvider:  llmProvider,
		orchestrator: orchestrator,
		timeout:      timeout,
	}
}

func dialogueOp(userId uuid.UUID) string {
	return "dialogue:" + userId.String()
}

// modelReply is the JSON envelope the system prompt asks the model for.
type modelReply struct {
	Text          string `json:"text"`
	FocusedColumn int    `json:"focusedColumn"`
}

func (s *dialogueService) SendTurn(ctx context.Context, userId uuid.UUID, req *dto.DialogueRequest) (mapstate.Transcript, int) {
	op := dialogueOp(userId)

	// The busy flag is advisory; rapid-fire turns are allowed and each one
	// gets its own call.
	s.orchestrator.TryBegin(op)
	defer s.orchestrator.End(op)

	// Optimistic append: the user turn is persisted before the model is
	// asked, so it stays visible whatever happens next.
	transcript := s.reflection.GetTranscript(ctx, userId).
		Append(mapstate.Turn{Sender: mapstate.SenderUser, Text: req.Message})
	s.reflection.SaveTranscript(ctx, userId, transcript)

	history := s.buildHistory(transcript, &req.Map)

	raw, callErr := s.orchestrator.Invoke(ctx, op, s.timeout, func(callCtx context.Context) (string, error) {
		return s.llmProvider.Chat(callCtx, history, llm.WithTemperature(0.7))
	})

	var aiText string
	var focused int
	if callErr != nil {
		// The transcript must never show a raw error; a fixed apology turn
		// stands in for the reply.
		aiText = constant.DialogueApologyText
		focused = mapstate.ColumnGoal
	} else {
		aiText, focused = parseModelReply(raw)
	}

	transcript = transcript.Append(mapstate.Turn{Sender: mapstate.SenderAI, Text: aiText})
	s.reflection.SaveTranscript(ctx, userId, transcript)

	return transcript, focused
}

func (s *dialogueService) Busy(userId uuid.UUID) bool {
	return s.orchestrator.Busy(dialogueOp(userId))
}

// buildHistory converts the transcript into provider messages, with the
// system prompt and the serialized map state up front.
func (s *dialogueService) buildHistory(t mapstate.Transcript, m *mapstate.MapData) []llm.Message {
	history := make([]llm.Message, 0, len(t)+2)
	history = append(history, llm.Message{Role: "system", Content: constant.DialogueSystemPromptV1})

	if mapJSON, err := json.Marshal(m); err == nil {
		history = append(history, llm.Message{
			Role:    "system",
			Content: "Current map state: " + string(mapJSON),
		})
	}

	for _, turn := range t {
		role := "user"
		if turn.Sender == mapstate.SenderAI {
			role = "assistant"
		}
		history = append(history, llm.Message{Role: role, Content: turn.Text})
	}
	return history
}

// parseModelReply decodes the {text, focusedColumn} envelope. When the model
// answers with plain prose instead, the whole reply is kept and the keyword
// classifier picks the focus.
func parseModelReply(raw string) (string, int) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var reply modelReply
	if err := json.Unmarshal([]byte(trimmed), &reply); err == nil && reply.Text != "" {
		if mapstate.ValidColumn(reply.FocusedColumn) {
			return reply.Text, reply.FocusedColumn
		}
		return reply.Text, mapstate.DetectFocus(reply.Text)
	}

	return raw, mapstate.DetectFocus(raw)
}
