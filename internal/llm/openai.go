package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/codecamp-kr/qna-assist/internal/model"
)

const extractionSystemPrompt = `당신은 개발 교육 분야의 키워드 추출 전문가입니다.
학생의 질문에서 기술적 키워드를 추출하고, 한글 용어는 영문 표준 용어로 변환하세요.
오타가 있다면 수정하고, 적절한 카테고리를 선택하세요.

카테고리 목록: Front-end, Back-end, Figma, Git/GitHub, Terminal, VSC, Node, 기타

응답은 반드시 다음 JSON 형식이어야 합니다:
{
  "keywords": ["키워드1", "키워드2", "키워드3"],
  "category": "카테고리",
  "corrected_terms": {"원본용어": "수정된용어"}
}`

// OpenAIProvider implements Provider on an OpenAI-compatible chat endpoint.
type OpenAIProvider struct {
	client  *openai.Client
	limiter *rate.Limiter
	config  Config
}

// NewOpenAIProvider creates the provider. An API key is required unless a
// BaseURL points at a local endpoint that ignores authentication.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" && config.BaseURL == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		config:  config,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// extractionPayload matches the JSON object the model is instructed to
// return.
type extractionPayload struct {
	Keywords       []string          `json:"keywords"`
	Category       string            `json:"category"`
	CorrectedTerms map[string]string `json:"corrected_terms"`
}

// ExtractKeywords asks the model for keywords via a single JSON-mode chat
// completion.
func (p *OpenAIProvider) ExtractKeywords(ctx context.Context, question string) (*Response, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	modelName := p.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	timeout := p.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: extractionSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("질문: %q\n\n위 형식의 JSON으로 응답해주세요.", question),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
		MaxTokens:   300,
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	payload, err := parseExtractionPayload(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	category := payload.Category
	if category == "" {
		category = "all"
	}

	return &Response{
		Keywords:       payload.Keywords,
		Category:       category,
		CorrectedTerms: payload.CorrectedTerms,
		Model:          modelName,
		Usage: &model.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// parseExtractionPayload decodes the model output, tolerating markdown
// code fences some models wrap around JSON despite JSON mode.
func parseExtractionPayload(content string) (*extractionPayload, error) {
	text := strings.TrimSpace(content)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var payload extractionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("malformed extraction payload: %w", err)
	}
	return &payload, nil
}
