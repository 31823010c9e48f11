package dashscope

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse is returned when API returns no translation
var ErrEmptyResponse = errors.New("empty translation response")

const (
	// DefaultBaseURL is DashScope OpenAI compatible endpoint
	DefaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	// DefaultModel is DashScope machine translation model
	DefaultModel = "qwen-mt-turbo"
)

// TranslationOptions are passed to qwen-mt models next to the messages
type TranslationOptions struct {
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Client implements translation with DashScope chat completions
// docs: https://help.aliyun.com/zh/model-studio/machine-translation
type Client struct {
	model  string
	client *openai.Client
}

// Translate sends text as a single user message and returns reply content
func (c Client) Translate(ctx context.Context, text string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			log.Error().
				Int("status", apiErr.HTTPStatusCode).
				Str("message", apiErr.Message).
				Msg("unsuccessful response from dashscope API")
		}
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", ErrEmptyResponse
	}
	return translation, nil
}

// NewClient creates client, httpClient may be nil
func NewClient(apiKey, baseURL, model string, options TranslationOptions, httpClient *http.Client) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	config.HTTPClient = &http.Client{
		Transport: optionsTransport{base: base, options: options},
		Timeout:   httpClient.Timeout,
	}
	return Client{model: model, client: openai.NewClientWithConfig(config)}
}
