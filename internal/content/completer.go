package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alkime/storyform/internal/config"
	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

const (
	maxTokens   = 300
	temperature = 0.5
)

// OpenAICompleter calls the chat completions API on OpenAI or an Azure OpenAI deployment.
type OpenAICompleter struct {
	apiKey string
	model  string
	opts   []option.RequestOption
}

// NewOpenAICompleter creates a completer against api.openai.com.
// Extra options (e.g. a base URL) are appended after the defaults.
func NewOpenAICompleter(apiKey, model string, opts ...option.RequestOption) *OpenAICompleter {
	return &OpenAICompleter{
		apiKey: apiKey,
		model:  model,
		opts: append([]option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		}, opts...),
	}
}

// NewAzureCompleter creates a completer against an Azure OpenAI deployment.
func NewAzureCompleter(endpoint, apiVersion, apiKey, deployment string) *OpenAICompleter {
	return &OpenAICompleter{
		apiKey: apiKey,
		model:  deployment,
		opts: []option.RequestOption{
			azure.WithEndpoint(endpoint, apiVersion),
			azure.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		},
	}
}

// Complete runs a single chat completion.
func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("API key required: set AZURE_OPENAI_API_KEY or OPENAI_API_KEY")
	}

	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion via OpenAI API failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from OpenAI API")
	}

	return resp.Choices[0].Message.Content, nil
}

// AnthropicCompleter calls the Anthropic messages API.
type AnthropicCompleter struct {
	apiKey string
	model  anthropic.Model
	opts   []anthropicoption.RequestOption
}

// NewAnthropicCompleter creates a completer for Claude models.
func NewAnthropicCompleter(apiKey string, opts ...anthropicoption.RequestOption) *AnthropicCompleter {
	return &AnthropicCompleter{
		apiKey: apiKey,
		model:  anthropic.ModelClaudeSonnet4_5_20250929,
		opts: append([]anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}, opts...),
	}
}

// Complete runs a single message request and joins the returned text blocks.
func (c *AnthropicCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("API key required: set ANTHROPIC_API_KEY or run 'storyform config set-key anthropic <key>'")
	}

	client := anthropic.NewClient(c.opts...)

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
		Temperature: anthropic.Float(temperature),
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to generate metadata via Anthropic API: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}

	if sb.Len() == 0 {
		return "", errors.New("empty response from Anthropic API")
	}

	return sb.String(), nil
}

// NewCompleter picks the completer configured by AI_PROVIDER.
func NewCompleter(cfg *config.Config) (Completer, error) {
	switch cfg.AIProvider {
	case config.ProviderAzure:
		if cfg.AzureOpenAIEndpoint == "" {
			return nil, errors.New("AZURE_OPENAI_ENDPOINT is required for the azure provider")
		}
		return NewAzureCompleter(cfg.AzureOpenAIEndpoint, cfg.AzureOpenAIAPIVersion,
			cfg.AzureOpenAIAPIKey, cfg.GPTDeployment), nil
	case config.ProviderOpenAI:
		return NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case config.ProviderAnthropic:
		return NewAnthropicCompleter(cfg.AnthropicAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}

// Unavailable is a Completer that always fails with Err. It stands in when no
// provider is configured so metadata requests degrade to a warning.
type Unavailable struct {
	Err error
}

// Complete implements Completer.
func (u Unavailable) Complete(context.Context, string, string) (string, error) {
	return "", u.Err
}
