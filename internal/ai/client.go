// Package ai 封装生成式模型调用，把聚合摘要转成文字分析
package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrUnavailable 模型服务不可达或调用失败
var ErrUnavailable = errors.New("ai service unavailable")

// systemPrompt 分析会话的系统提示词
const systemPrompt = "Ты - эксперт по анализу данных донорских организаций. Отвечай на русском языке."

// Client 生成式模型客户端
type Client struct {
	model string
}

// NewClient 创建客户端，认证信息从环境变量读取（GEMINI_API_KEY）
func NewClient(model string) *Client {
	return &Client{model: model}
}

// Analyze 把提示词发给模型并返回文字分析
// 上游失败以 ErrUnavailable 包装返回，调用方据此映射为网关错误，
// 不影响存储状态
func (c *Client) Analyze(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("%w: create client: %v", ErrUnavailable, err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %v", ErrUnavailable, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response from model", ErrUnavailable)
	}
	return text, nil
}
