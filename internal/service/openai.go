package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealsense/buybox/internal/config"
)

// ChatClient is the interface the parsing and firm-intel services use to
// talk to a language model. It exists so tests can substitute a stub.
type ChatClient interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
	ChatCompletionStream(ctx context.Context, req ChatCompletionRequest, callback StreamCallback) error
	IsEnabled() bool
}

// OpenAIClient handles OpenAI-compatible API interactions
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ ChatClient = (*OpenAIClient)(nil)

// NewOpenAIClient creates a new OpenAI-compatible client. The HTTP
// client timeout enforces the caller-facing upper bound on every call.
func NewOpenAIClient(cfg *config.OpenAIConfig, logger zerolog.Logger) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		logger: logger.With().Str("component", "openai").Logger(),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
	Stream         bool            `json:"stream,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat specifies the format of the response
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// StreamChunk is one parsed SSE delta. ThinkingContent carries
// provider-specific reasoning deltas (e.g. DeepSeek) when present.
type StreamChunk struct {
	Content         string
	ThinkingContent string
	Role            string
	Done            bool
}

// StreamCallback is called for each chunk in streaming mode
type StreamCallback func(chunk *StreamChunk) error

func (c *OpenAIClient) applyDefaults(req *ChatCompletionRequest) {
	if req.Model == "" {
		req.Model = c.config.ChatModel
	}
	if req.Temperature == 0 && c.config.Temperature > 0 {
		req.Temperature = c.config.Temperature
	}
	if req.MaxTokens == 0 && c.config.MaxTokens > 0 {
		req.MaxTokens = c.config.MaxTokens
	}
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("OpenAI API is not enabled (missing API key)")
	}
	c.applyDefaults(&req)

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// ChatCompletionStream performs a streaming chat completion request,
// delivering SSE deltas to the callback as they arrive.
func (c *OpenAIClient) ChatCompletionStream(ctx context.Context, req ChatCompletionRequest, callback StreamCallback) error {
	if !c.config.Enabled {
		return fmt.Errorf("OpenAI API is not enabled (missing API key)")
	}
	c.applyDefaults(&req)
	req.Stream = true

	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read stream: %w", err)
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// SSE format: "data: {...}"
		if !bytes.HasPrefix(line, []byte("data: ")) {
			continue
		}
		data := bytes.TrimPrefix(line, []byte("data: "))
		if bytes.Equal(data, []byte("[DONE]")) {
			break
		}

		chunk, err := parseStreamChunk(data)
		if err != nil {
			c.logger.Warn().Err(err).Msg("failed to parse stream chunk")
			continue
		}

		if err := callback(chunk); err != nil {
			return fmt.Errorf("callback error: %w", err)
		}
	}

	return nil
}

// parseStreamChunk decodes one SSE delta. The optional reasoning_content
// field covers providers that stream thinking tokens separately.
func parseStreamChunk(data []byte) (*StreamChunk, error) {
	var rawChunk struct {
		Choices []struct {
			Delta struct {
				Role             string  `json:"role,omitempty"`
				Content          string  `json:"content,omitempty"`
				ReasoningContent *string `json:"reasoning_content,omitempty"`
			} `json:"delta"`
			FinishReason string `json:"finish_reason,omitempty"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(data, &rawChunk); err != nil {
		return nil, err
	}

	chunk := &StreamChunk{}
	if len(rawChunk.Choices) > 0 {
		delta := rawChunk.Choices[0].Delta
		chunk.Role = delta.Role
		chunk.Content = delta.Content
		if delta.ReasoningContent != nil {
			chunk.ThinkingContent = *delta.ReasoningContent
		}
		chunk.Done = rawChunk.Choices[0].FinishReason != ""
	}
	return chunk, nil
}
