package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/codecamp-kr/qna-assist/internal/cache"
	"github.com/codecamp-kr/qna-assist/internal/model"
)

const visionSystemPrompt = `당신은 에러 화면 및 코드 스크린샷에서 텍스트를 추출하는 전문가입니다.
이미지에서 보이는 모든 텍스트, 에러 메시지, 코드, 경로 등을 정확하게 추출해주세요.

추출 규칙:
1. 에러 메시지가 있다면 가장 먼저 추출
2. 코드는 들여쓰기를 유지하여 추출
3. 파일 경로, URL이 있다면 정확하게 추출
4. 줄 번호가 있다면 포함
5. 불필요한 UI 요소 (버튼 텍스트, 메뉴 등)는 제외

텍스트만 반환하고, 추가 설명은 하지 마세요.`

const visionUserPrompt = "이 이미지에서 에러 메시지와 관련 코드/정보를 추출해주세요."

// HallucinationNote flags a vision response that refused or fabricated
// instead of transcribing. Callers must treat it as "no text extracted",
// never as an error.
const HallucinationNote = "hallucination suspected"

// Config configures the vision OCR capability.
type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Result is the outcome of one OCR request.
type Result struct {
	Text   string            `json:"text"`
	Note   string            `json:"note,omitempty"`
	Model  string            `json:"model,omitempty"`
	Usage  *model.TokenUsage `json:"usage,omitempty"`
	Cached bool              `json:"cached,omitempty"`
}

// Client extracts text from screenshots through a vision model, caching
// results by image content hash so retried uploads do not pay twice.
type Client struct {
	api      *openai.Client
	limiter  *rate.Limiter
	store    cache.Cache
	config   Config
	cacheTTL time.Duration
}

// NewClient creates the OCR client. store may be nil to disable caching.
func NewClient(config Config, store cache.Cache, cacheTTL time.Duration) (*Client, error) {
	if config.APIKey == "" && config.BaseURL == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		api:      openai.NewClientWithConfig(clientConfig),
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		store:    store,
		config:   config,
		cacheTTL: cacheTTL,
	}, nil
}

// ExtractText runs OCR over the image bytes. Identical images within the
// cache TTL are served from cache. A hallucination-flagged response comes
// back as empty text with HallucinationNote set, not as an error.
func (c *Client) ExtractText(ctx context.Context, imageBytes []byte, mimeType string) (*Result, error) {
	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	key := cache.ContentKey(imageBytes)
	if c.store != nil {
		if data, ok := c.store.Get(key); ok {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.Cached = true
				return &cached, nil
			}
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	modelName := c.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	timeout := c.config.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageBytes))

	req := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: visionSystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: visionUserPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
		MaxTokens:   2000,
		Temperature: 0.1,
	}

	resp, err := c.api.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	result := &Result{
		Text:  text,
		Model: modelName,
		Usage: &model.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}

	if looksHallucinated(text) {
		result.Text = ""
		result.Note = HallucinationNote
	}

	if c.store != nil {
		if data, err := json.Marshal(result); err == nil {
			c.store.Set(key, data, c.cacheTTL)
		}
	}

	return result, nil
}

// refusalPhrases are the model apologizing or declaring there is nothing
// to read, instead of transcribing.
var refusalPhrases = []string{
	"텍스트를 찾을 수 없",
	"텍스트가 없습니다",
	"추출할 텍스트가 없",
	"죄송합니다",
	"i'm sorry",
	"i cannot",
	"no text",
	"unable to extract",
}

func looksHallucinated(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
