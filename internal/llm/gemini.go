package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Gemini calls a generateContent endpoint over plain HTTP. It serves as
// the primary chunk summarizer and as the document reflector.
type Gemini struct {
	baseURL string
	apiKey  string
	model   string

	temperature float64
	maxTokens   int

	httpClient *http.Client
}

// GeminiOptions configures the client. Zero values fall back to sane
// defaults except APIKey, which is required.
type GeminiOptions struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func NewGemini(opts GeminiOptions) (*Gemini, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key required")
	}
	if opts.Model == "" {
		opts.Model = "gemini-1.5-pro"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1000
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Gemini{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		apiKey:      opts.APIKey,
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		httpClient:  &http.Client{Timeout: opts.Timeout},
	}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) SummarizeChunk(ctx context.Context, text string, index, total int) (string, error) {
	prompt := fmt.Sprintf(
		"You are analyzing section %d of %d of a technical document. Summarize this section and extract the key points, procedures, and specifications:\n\n%s",
		index+1, total, text,
	)
	return g.generate(ctx, prompt)
}

const reflectionPrompt = `Reflect on the following document content. Respond with ONLY a JSON object, no prose and no code fences, with these keys:
"symbolic_terms": list of symbolically significant terms,
"emotions": list of emotional tones present,
"structure": one sentence describing how the content is organized,
"meaning": one sentence describing what the content means.

Content:
%s`

// Reflect asks the model for a structured reflection and parses the JSON
// answer into a Reflection. A response that is not valid JSON is a
// provider error; the caller degrades to the zero value.
func (g *Gemini) Reflect(ctx context.Context, text string) (Reflection, error) {
	raw, err := g.generate(ctx, fmt.Sprintf(reflectionPrompt, text))
	if err != nil {
		return Reflection{}, err
	}
	var r Reflection
	if err := json.Unmarshal([]byte(stripFences(raw)), &r); err != nil {
		return Reflection{}, fmt.Errorf("gemini: reflection is not valid JSON: %w", err)
	}
	return r, nil
}

// stripFences removes a markdown code fence the model sometimes wraps
// around JSON answers despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{Temperature: g.temperature, MaxOutputTokens: g.maxTokens},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		var terr interface{ Timeout() bool }
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &terr) && terr.Timeout()) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &APIError{Provider: g.Name(), StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
