package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/agentops/haruspex/internal/llm/model"
	"go.uber.org/zap"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultBaseURL is the Groq OpenAI-compatible API root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "llama-3.3-70b-versatile"

	completionsPath = "/chat/completions"
	probeMaxTokens  = 10
)

type LLMClient interface {
	// ChatCompletion runs a single chat completion and returns the content
	// of the first choice. A zero temperature is omitted from the request.
	ChatCompletion(
		ctx context.Context,
		messages []model.ChatMessage,
		maxTokens int,
		temperature float64,
	) (string, error)
	// Ping reports whether the endpoint answers a minimal completion
	// request. The probe is best-effort and never returns an error.
	Ping(ctx context.Context) bool
}

type GroqClientImpl struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGroqClientImpl creates a client for an OpenAI-compatible completions
// endpoint. Empty baseURL and chatModel fall back to the Groq defaults.
func NewGroqClientImpl(baseURL string, apiKey string, chatModel string, logger *zap.Logger) *GroqClientImpl {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if chatModel == "" {
		chatModel = DefaultModel
	}
	return &GroqClientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      chatModel,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (gc *GroqClientImpl) ChatCompletion(
	ctx context.Context,
	messages []model.ChatMessage,
	maxTokens int,
	temperature float64,
) (string, error) {
	completionRequest := model.ChatCompletionRequest{
		Model:       gc.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	requestBody, err := json.Marshal(completionRequest)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		gc.baseURL+completionsPath,
		bytes.NewReader(requestBody),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+gc.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := gc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute chat completion request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("failed to execute chat completion request: status %d: %s", res.StatusCode, string(body))
	}

	var completion model.ChatCompletionResponse
	if err := json.NewDecoder(res.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode chat completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion response contained no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

func (gc *GroqClientImpl) Ping(ctx context.Context) bool {
	messages := []model.ChatMessage{
		{Role: model.RoleUser, Content: "Hello"},
	}
	if _, err := gc.ChatCompletion(ctx, messages, probeMaxTokens, 0); err != nil {
		gc.logger.Warn("LLM probe failed", zap.Error(err))
		return false
	}
	return true
}
