package factory

import (
	"fmt"

	"reflect360-be/pkg/llm"
	"reflect360-be/pkg/llm/openaicompat"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai", "openai-compatible":
		return openaicompat.NewProvider(apiKey, baseURL, modelName), nil
	case "huggingface":
		if baseURL == "" {
			baseURL = "https://router.huggingface.co/v1"
		}
		return openaicompat.NewProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
