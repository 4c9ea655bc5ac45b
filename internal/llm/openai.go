package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAI is the fallback chunk summarizer. It speaks the chat-completions
// protocol, so a base URL override also covers local OpenAI-compatible
// servers.
type OpenAI struct {
	model  openai.ChatModel
	client *openai.Client

	temperature float64
	timeout     time.Duration
}

// fallbackMaxTokens caps fallback answers; the secondary provider is a
// safety net, not the main summarizer.
const fallbackMaxTokens = 500

type OpenAIOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

func NewOpenAI(opts OpenAIOptions) (*OpenAI, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai: api key required")
	}
	if opts.Model == "" {
		opts.Model = string(openai.ChatModelGPT4oMini)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	cli := openai.NewClient(reqOpts...)
	return &OpenAI{
		model:       openai.ChatModel(opts.Model),
		client:      &cli,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
	}, nil
}

func (c *OpenAI) Name() string { return "chatgpt" }

func (c *OpenAI) SummarizeChunk(ctx context.Context, text string, index, total int) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	prompt := fmt.Sprintf("Summarize and extract key points from this section of a technical document:\n\n%s", text)
	resp, err := c.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(fallbackMaxTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
