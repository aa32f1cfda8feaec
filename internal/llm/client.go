// ABOUTME: Chat-completion client for the xAI Grok API via go-openai
// ABOUTME: Supports vision input as base64 data URLs and structured JSON output
package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Request describes one chat-completion call: a system instruction, a user
// message, an optional inline image, and a structured-output flag.
type Request struct {
	Model  string
	System string
	User   string

	// Optional image attached to the user message.
	Image     []byte
	ImageMIME string
	Detail    string // vision detail hint: "low" or "high"

	// JSONMode requests json_object structured output.
	JSONMode bool
}

// Completion is the distilled result of one call: the generated text plus
// the token counts the cost accountant needs.
type Completion struct {
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Client is the opaque "call model M with messages X" capability the
// pipeline depends on. Implementations must not retry.
type Client interface {
	Complete(ctx context.Context, op string, req Request) (Completion, error)
}

// GrokClient talks to the xAI API through the OpenAI-compatible chat
// completions endpoint.
type GrokClient struct {
	client *openai.Client
	apiKey string
}

// NewGrokClient builds a client for the given endpoint and credential. An
// empty credential is accepted; calls will fail with ErrNotConfigured.
func NewGrokClient(baseURL, apiKey string) *GrokClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &GrokClient{
		client: openai.NewClientWithConfig(cfg),
		apiKey: apiKey,
	}
}

// Complete issues a single chat completion. op names the pipeline stage for
// error reporting. No retries: any failure aborts the caller's pipeline.
func (c *GrokClient) Complete(ctx context.Context, op string, req Request) (Completion, error) {
	if c.apiKey == "" {
		return Completion{}, ErrNotConfigured
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.System},
		userMessage(req),
	}

	chatReq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return Completion{}, wrapUpstream(op, err)
	}
	if len(resp.Choices) == 0 {
		return Completion{}, &UpstreamError{Op: op, Err: fmt.Errorf("no completion choices returned")}
	}

	return Completion{
		Content:      resp.Choices[0].Message.Content,
		Model:        req.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

// userMessage builds the user turn, attaching the image as a data URL part
// when present.
func userMessage(req Request) openai.ChatCompletionMessage {
	if len(req.Image) == 0 {
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.User,
		}
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s",
		req.ImageMIME, base64.StdEncoding.EncodeToString(req.Image))

	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL,
					Detail: openai.ImageURLDetail(req.Detail),
				},
			},
			{
				Type: openai.ChatMessagePartTypeText,
				Text: req.User,
			},
		},
	}
}

// wrapUpstream classifies a go-openai error, preserving the HTTP status
// when the API reported one.
func wrapUpstream(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Op: op, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{Op: op, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &UpstreamError{Op: op, Err: err}
}
