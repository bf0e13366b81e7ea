package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/dossier/pkg/config"
)

// Profile selects one of the execution configurations of the generation service
type Profile string

// available profiles
const (
	ProfileDefault      Profile = "default"
	ProfileUnrestricted Profile = "unrestricted"
)

// Request is a single non-streaming generation request
type Request struct {
	Profile Profile
	Prompt  string
	System  string // optional, overrides the profile's system directive
}

// Client talks to an OpenAI-compatible chat completion endpoint
type Client struct {
	client     *openai.Client
	profiles   map[Profile]profileSettings
	maxTokens  int
	retries    int
	retryDelay time.Duration
}

type profileSettings struct {
	model       string
	temperature float32
	system      string
}

// default system directive for the default profile
const defaultSystemPrompt = `You are a careful news editor. You work only with the material you are given, ` +
	`never invent facts and follow the output instructions exactly.`

// errPermanent marks responses that must not be retried
var errPermanent = errors.New("permanent llm error")

// NewClient creates a new LLM client
func NewClient(cfg config.LLMConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	unrestrictedModel := cfg.Unrestricted.Model
	if unrestrictedModel == "" {
		unrestrictedModel = cfg.Model
	}

	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		profiles: map[Profile]profileSettings{
			ProfileDefault: {model: cfg.Model, temperature: float32(cfg.Temperature), system: systemMsg},
			ProfileUnrestricted: {model: unrestrictedModel, temperature: float32(cfg.Unrestricted.Temperature),
				system: cfg.Unrestricted.SystemPrompt},
		},
		maxTokens:  cfg.MaxTokens,
		retries:    retries,
		retryDelay: time.Second,
	}
}

// Generate sends one prompt and returns the text of the first choice.
// Rate limits, server errors and transport failures are retried with backoff.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	profile, ok := c.profiles[req.Profile]
	if !ok {
		profile = c.profiles[ProfileDefault]
	}

	system := profile.system
	if req.System != "" {
		system = req.System
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	chatReq := openai.ChatCompletionRequest{
		Model:       profile.model,
		Temperature: profile.temperature,
		MaxTokens:   c.maxTokens,
		Messages:    messages,
		Stream:      false,
	}

	var result string
	attempt := 0
	retrier := repeater.NewBackoff(c.retries, c.retryDelay, repeater.WithMaxDelay(30*time.Second))
	err := retrier.Do(ctx, func() error {
		attempt++
		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			if !isRetryable(err) {
				return fmt.Errorf("%w: %w", errPermanent, err)
			}
			lgr.Printf("[DEBUG] llm request attempt %d/%d failed: %v", attempt, c.retries, err)
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("%w: no response from llm", errPermanent)
		}
		result = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	}, errPermanent)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}

	if result == "" {
		return "", fmt.Errorf("empty response from llm")
	}
	return result, nil
}

// isRetryable reports whether the error is transient: rate limit, server side failure or transport error
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}

	return true
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
