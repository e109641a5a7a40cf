package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"coach-backend/internal/llm"
)

const (
	chatURL       = "https://api.openai.com/v1/chat/completions"
	embeddingsURL = "https://api.openai.com/v1/embeddings"
)

// Client implements llm.Client using OpenAI Chat Completions and Embeddings.
type Client struct {
	apiKey         string
	model          string
	embeddingModel string
	httpClient     *http.Client

	chatEndpoint       string
	embeddingsEndpoint string
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model, embeddingModel string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(embeddingModel) == "" {
		embeddingModel = "text-embedding-3-small"
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:         apiKey,
		model:          model,
		embeddingModel: embeddingModel,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		chatEndpoint:       chatURL,
		embeddingsEndpoint: embeddingsURL,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (c *Client) OCRDocument(ctx context.Context, data []byte, mimeType string) (string, error) {
	messages := buildOCRPrompt(data, mimeType)
	content, err := c.chatOnce(ctx, "ocr", messages, false)
	if err != nil {
		return "", err
	}
	return content, nil
}

func (c *Client) StructureCV(ctx context.Context, rawText string) (json.RawMessage, error) {
	return c.chatJSON(ctx, "structure_cv", buildStructurePrompt(rawText))
}

func (c *Client) ExtractJob(ctx context.Context, pageText string) (json.RawMessage, error) {
	return c.chatJSON(ctx, "extract_job", buildExtractJobPrompt(pageText))
}

func (c *Client) AnalyzeGaps(ctx context.Context, cvContent, jobRequirements json.RawMessage) (json.RawMessage, error) {
	return c.chatJSON(ctx, "analyze_gaps", buildGapPrompt(cvContent, jobRequirements))
}

func (c *Client) GenerateQuestions(ctx context.Context, gapAnalysis, jobRequirements, cvContent json.RawMessage) (json.RawMessage, error) {
	return c.chatJSON(ctx, "generate_questions", buildQuestionPrompt(gapAnalysis, jobRequirements, cvContent))
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(map[string]any{
		"model": c.embeddingModel,
		"input": text,
	})
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, c.embeddingsEndpoint, payload)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openai embeddings parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error: %s", parsed.Error.Message)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings response missing data")
	}
	return parsed.Data[0].Embedding, nil
}

func (c *Client) chatJSON(ctx context.Context, op string, messages []chatMessage) (json.RawMessage, error) {
	content, err := c.chatOnce(ctx, op, messages, true)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(content), nil
}

func (c *Client) chatOnce(ctx context.Context, op string, messages []chatMessage, jsonMode bool) (string, error) {
	temp := float32(0)
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: &temp,
	}
	if jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	body, err := c.post(ctx, c.chatEndpoint, payload)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}
	logUsage(c.model, op, parsed.Usage)
	return content, nil
}

func (c *Client) post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return nil, llm.ErrInvalidAPIKey
	case http.StatusTooManyRequests:
		return nil, llm.ErrRateLimited
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("openai http status %d", resp.StatusCode)
	}
	return body, nil
}

func logUsage(model, op string, usage *struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}) {
	if usage == nil {
		log.Printf("llm response model=%s op=%s", model, op)
		return
	}
	log.Printf("llm response model=%s op=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		model, op, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
}

var _ llm.Client = (*Client)(nil)
