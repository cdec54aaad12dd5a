package llm

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	openai "github.com/sashabaranov/go-openai"

	"github.com/matthewelijahlogan/mirror/internal/fortune"
)

// OpenAIClient OpenAI 兼容的占卜文本生成客户端
type OpenAIClient struct {
	config *Config
	client *openai.Client
}

var _ fortune.Generator = (*OpenAIClient)(nil)

// NewOpenAIClient 创建新的 OpenAI 客户端
func NewOpenAIClient(config *Config) *OpenAIClient {
	config.normalize()

	clientConfig := openai.DefaultConfig(config.APIKey)

	// 配置 BaseURL
	if config.BaseURL != "" {
		// 直接使用配置的 BaseURL,不自动添加 /v1
		// 因为不同的 API 提供商可能有不同的路径格式
		clientConfig.BaseURL = config.BaseURL
		logx.Debug("OpenAI client BaseURL: %s", config.BaseURL)
	}

	// 配置 HTTP 客户端
	// 关键:禁用 HTTP/2,强制使用 HTTP/1.1 以避免 INTERNAL_ERROR
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		// 禁用 HTTP/2 - 设置空的 TLSNextProto map 会阻止 HTTP/2
		TLSNextProto: make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
	}

	clientConfig.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	client := openai.NewClientWithConfig(clientConfig)

	logx.Info("OpenAI client initialized, model %s", config.Model)

	return &OpenAIClient{
		config: config,
		client: client,
	}
}

// GenerateFortune 生成一条候选占卜文本
// 任何失败(含超时)原样返回错误,由编排器决定回落
func (c *OpenAIClient) GenerateFortune(ctx context.Context, req fortune.GenRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: oracleSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildOraclePrompt(req),
			},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// oracleSystemPrompt 占卜师人设
const oracleSystemPrompt = "You are an artistic poetic oracle. " +
	"Write a gentle, original fortune. Keep it short (1-3 sentences). " +
	"Use evocative language, and do not repeat past fortunes verbatim."

// buildOraclePrompt 拼接占卜提示词
func buildOraclePrompt(req fortune.GenRequest) string {
	return fmt.Sprintf(
		"Write a fortune for %s.\n"+
			"Zodiac: %s (element: %s). Tone: %s. Dominant trait: %s.\n"+
			"Profile: %s\n"+
			"Recent reflections:\n%s\n"+
			"Fortune:",
		req.Name,
		req.Zodiac, req.Element, req.Tone, req.Dominant,
		req.ProfileSnippet,
		req.HistoryText,
	)
}
