// FILE: internal/service/insight_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"reflect360-be/internal/constant"
	"reflect360-be/pkg/aicall"
	"reflect360-be/pkg/llm"
	"reflect360-be/pkg/mapstate"

	"github.com/google/uuid"
)

type IInsightService interface {
	// Generate produces the analysis text for one column (or the whole-map
	// summary for the summary pseudo-column) and persists it.
	Generate(ctx context.Context, userId uuid.UUID, columnId int, m mapstate.MapData) (string, *aicall.CallError)
}

type insightService struct {
	reflection     IReflectionService
	llmProvider    llm.LLMProvider
	orchestrator   *aicall.Orchestrator
	insightTimeout time.Duration
	summaryTimeout time.Duration
}

func NewInsightService(
	reflection IReflectionService,
	llmProvider llm.LLMProvider,
	orchestrator *aicall.Orchestrator,
	insightTimeout, summaryTimeout time.Duration,
) IInsightService {
	if insightTimeout <= 0 {
		insightTimeout = aicall.InsightTimeout
	}
	if summaryTimeout <= 0 {
		summaryTimeout = aicall.SummaryTimeout
	}
	return &insightService{
		reflection:     reflection,
		llmProvider:    llmProvider,
		orchestrator:   orchestrator,
		insightTimeout: insightTimeout,
		summaryTimeout: summaryTimeout,
	}
}

func insightOp(userId uuid.UUID, columnId int) string {
	return fmt.Sprintf("insight:%s:%d", userId, columnId)
}

func (s *insightService) Generate(ctx context.Context, userId uuid.UUID, columnId int, m mapstate.MapData) (string, *aicall.CallError) {
	if !mapstate.ValidInsightColumn(columnId) {
		return "", &aicall.CallError{Kind: aicall.KindUnknown, Message: fmt.Sprintf("unknown column %d", columnId)}
	}

	op := insightOp(userId, columnId)
	s.orchestrator.TryBegin(op)
	defer s.orchestrator.End(op)

	// Clear the entry first: an empty string marks a request in flight, and
	// a stale insight never survives a retry.
	insights := s.reflection.GetInsights(ctx, userId)
	insights[columnId] = ""
	s.reflection.SaveInsights(ctx, userId, insights)

	m.Normalize()
	prompt := constant.InsightPrompt(columnId, &m)

	timeout := s.insightTimeout
	if columnId == mapstate.ColumnSummary {
		timeout = s.summaryTimeout
	}

	text, callErr := s.orchestrator.Invoke(ctx, op, timeout, func(callCtx context.Context) (string, error) {
		return s.llmProvider.Generate(callCtx, prompt, llm.WithTemperature(0.5))
	})
	if callErr != nil {
		return "", callErr
	}

	insights = s.reflection.GetInsights(ctx, userId)
	insights[columnId] = text
	s.reflection.SaveInsights(ctx, userId, insights)

	return text, nil
}
