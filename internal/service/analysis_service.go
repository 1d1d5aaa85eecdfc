// FILE: internal/service/analysis_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"reflect360-be/internal/constant"
	"reflect360-be/internal/dto"
	"reflect360-be/internal/entity"
	"reflect360-be/internal/repository/specification"
	"reflect360-be/internal/repository/unitofwork"
	"reflect360-be/pkg/aicall"
	"reflect360-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type IAnalysisService interface {
	// Analyze returns the AI reading of the user's collected feedback,
	// serving a cached result when one is fresh.
	Analyze(ctx context.Context, userId uuid.UUID) (*dto.AnalysisResponse, error)

	// Invalidate drops the cached analysis for a user, called when a new
	// response arrives.
	Invalidate(userId uuid.UUID)

	// Analysis returns the typed result for export composition. Nil when the
	// user has no responses or the model call fails.
	Analysis(ctx context.Context, userId uuid.UUID) *entity.AnalysisResult
}

type analysisService struct {
	uowFactory   unitofwork.RepositoryFactory
	llmProvider  llm.LLMProvider
	orchestrator *aicall.Orchestrator
	cached       *cache.Cache
	timeout      time.Duration
	offline      bool
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	orchestrator *aicall.Orchestrator,
	timeout time.Duration,
	offline bool,
) IAnalysisService {
	if timeout <= 0 {
		timeout = aicall.SummaryTimeout
	}
	return &analysisService{
		uowFactory:   uowFactory,
		llmProvider:  llmProvider,
		orchestrator: orchestrator,
		cached:       cache.New(30*time.Minute, 10*time.Minute),
		timeout:      timeout,
		offline:      offline,
	}
}

func analysisCacheKey(userId uuid.UUID) string {
	return "analysis:" + userId.String()
}

func (s *analysisService) Analyze(ctx context.Context, userId uuid.UUID) (*dto.AnalysisResponse, error) {
	if s.offline {
		return nil, ErrCloudDisabled
	}

	if cachedResult, found := s.cached.Get(analysisCacheKey(userId)); found {
		result := cachedResult.(*entity.AnalysisResult)
		resp := toAnalysisResponse(result)
		resp.Cached = true
		return resp, nil
	}

	result, err := s.compute(ctx, userId)
	if err != nil {
		return nil, err
	}

	s.cached.Set(analysisCacheKey(userId), result, cache.DefaultExpiration)
	return toAnalysisResponse(result), nil
}

func (s *analysisService) Invalidate(userId uuid.UUID) {
	s.cached.Delete(analysisCacheKey(userId))
}

func (s *analysisService) Analysis(ctx context.Context, userId uuid.UUID) *entity.AnalysisResult {
	if s.offline {
		return nil
	}
	if cachedResult, found := s.cached.Get(analysisCacheKey(userId)); found {
		return cachedResult.(*entity.AnalysisResult)
	}
	result, err := s.compute(ctx, userId)
	if err != nil {
		return nil
	}
	s.cached.Set(analysisCacheKey(userId), result, cache.DefaultExpiration)
	return result
}

func (s *analysisService) compute(ctx context.Context, userId uuid.UUID) (*entity.AnalysisResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	responses, err := uow.FeedbackRepository().FindAll(ctx,
		specification.BySurveyID{SurveyID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, ErrNotFound
	}

	prompt := constant.AnalysisPrompt(responses)

	op := "analysis:" + userId.String()
	raw, callErr := s.orchestrator.Invoke(ctx, op, s.timeout, func(callCtx context.Context) (string, error) {
		return s.llmProvider.Generate(callCtx, prompt, llm.WithTemperature(0.3))
	})
	if callErr != nil {
		return nil, callErr
	}

	return parseAnalysis(raw)
}

// parseAnalysis decodes the model's JSON envelope, tolerating a markdown
// code fence around it.
func parseAnalysis(raw string) (*entity.AnalysisResult, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var out struct {
		Summary  string            `json:"summary"`
		Themes   []string          `json:"themes"`
		PerGroup map[string]string `json:"per_group"`
		Advice   string            `json:"advice"`
	}
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return nil, err
	}

	return &entity.AnalysisResult{
		Summary:  out.Summary,
		Themes:   out.Themes,
		PerGroup: out.PerGroup,
		Advice:   out.Advice,
	}, nil
}

func toAnalysisResponse(result *entity.AnalysisResult) *dto.AnalysisResponse {
	return &dto.AnalysisResponse{
		Summary:  result.Summary,
		Themes:   result.Themes,
		PerGroup: result.PerGroup,
		Advice:   result.Advice,
	}
}
