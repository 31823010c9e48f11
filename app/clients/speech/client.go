package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultModel is text to speech model
	DefaultModel = string(openai.TTSModel1)
	// DefaultVoice is voice used for reading
	DefaultVoice = string(openai.VoiceAlloy)
)

// Client synthesizes speech with OpenAI compatible audio API
// docs: https://platform.openai.com/docs/api-reference/audio/createSpeech
type Client struct {
	model  openai.SpeechModel
	voice  openai.SpeechVoice
	client *openai.Client
}

// Synthesize returns mp3 audio stream for the text, caller must close it
func (c Client) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	audio, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          c.model,
		Input:          text,
		Voice:          c.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	return audio, nil
}

// NewClient creates speech client, empty baseURL uses OpenAI API
func NewClient(apiKey, baseURL, model, voice string, httpClient *http.Client) Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if httpClient != nil {
		config.HTTPClient = httpClient
	}
	if model == "" {
		model = DefaultModel
	}
	if voice == "" {
		voice = DefaultVoice
	}
	return Client{
		model:  openai.SpeechModel(model),
		voice:  openai.SpeechVoice(voice),
		client: openai.NewClientWithConfig(config),
	}
}
