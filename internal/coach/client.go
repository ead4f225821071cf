package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/config"
)

const (
	temperature = 0.7
	maxTokens   = 500
	// MaxHistory is how many prior chat turns are sent along with a message.
	MaxHistory = 10
)

var ErrNoProviders = errors.New("no AI provider configured")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces an assistant reply for a system prompt and conversation.
type Completer interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}

// Provider is an OpenAI-compatible chat completions endpoint.
type Provider struct {
	Name   string
	URL    string
	APIKey string
	Model  string
}

// ProviderChain tries each provider in order until one answers.
type ProviderChain struct {
	providers []Provider
	client    *http.Client
}

// NewProviderChain builds the OpenAI, GLM, DeepSeek chain from config,
// skipping providers without an API key.
func NewProviderChain(cfg *config.Config) *ProviderChain {
	timeout := cfg.AITimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	candidates := []Provider{
		{Name: "openai", URL: cfg.OpenAIAPIURL, APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel},
		{Name: "glm", URL: cfg.GLMAPIURL, APIKey: cfg.GLMAPIKey, Model: cfg.GLMModel},
		{Name: "deepseek", URL: cfg.DeepSeekAPIURL, APIKey: cfg.DeepSeekAPIKey, Model: cfg.DeepSeekModel},
	}
	var providers []Provider
	for _, p := range candidates {
		if p.APIKey != "" {
			providers = append(providers, p)
		}
	}
	return NewProviderChainWith(&http.Client{Timeout: timeout}, providers...)
}

func NewProviderChainWith(client *http.Client, providers ...Provider) *ProviderChain {
	return &ProviderChain{providers: providers, client: client}
}

func (c *ProviderChain) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name
	}
	return names
}

// Complete returns the first successful reply. An empty string with a nil
// error means a provider answered without content.
func (c *ProviderChain) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	if len(c.providers) == 0 {
		return "", ErrNoProviders
	}

	var lastErr error
	for _, p := range c.providers {
		content, err := c.call(ctx, p, system, messages)
		if err == nil {
			return content, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		slog.Warn("AI provider failed, trying next", "provider", p.Name, "error", err)
		lastErr = err
	}
	return "", fmt.Errorf("all AI providers failed: %w", lastErr)
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *ProviderChain) call(ctx context.Context, p Provider, system string, messages []Message) (string, error) {
	all := make([]Message, 0, len(messages)+1)
	all = append(all, Message{Role: "system", Content: system})
	all = append(all, messages...)

	reqBody, err := json.Marshal(chatRequest{
		Model:       p.Model,
		Messages:    all,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned %d: %s", p.Name, resp.StatusCode, truncate(string(body), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode %s response: %w", p.Name, err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// RecentHistory keeps the last n user and assistant turns with content.
func RecentHistory(history []Message, n int) []Message {
	kept := make([]Message, 0, len(history))
	for _, m := range history {
		if (m.Role != "user" && m.Role != "assistant") || strings.TrimSpace(m.Content) == "" {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return kept
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
