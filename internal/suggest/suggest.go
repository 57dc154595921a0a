// Package suggest asks a generative model for a cleaner wording of the
// draft description and a likely project category.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"tempo-tracker/internal/logging"

	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-2.0-flash"
	promptTemplate = `Suggest a more professional version of this task description and a likely project category (e.g., Marketing, Development, Design, Admin). Description: "%s". ` +
		`Respond with a JSON object with the string fields "professionalDescription" and "suggestedProject".`
)

var (
	// ErrNotConfigured is returned when no API key was provided
	ErrNotConfigured = errors.New("suggestion service is not configured")
	// ErrEmptyResponse is returned when the model produced no usable text
	ErrEmptyResponse = errors.New("suggestion service returned no suggestion")
)

// Suggestion is the model's answer. Only Description is ever applied to the
// draft; Project is informational.
type Suggestion struct {
	Description string `json:"professionalDescription"`
	Project     string `json:"suggestedProject"`
}

// Config controls which model is called and how long a call may take
type Config struct {
	APIKey    string
	Model     string
	Endpoint  string
	Timeout   time.Duration
	MinLength int
}

// Option adjusts the genai client configuration before it is built
type Option func(*genai.ClientConfig)

// WithHTTPClient sends requests through client
func WithHTTPClient(client *http.Client) Option {
	return func(cc *genai.ClientConfig) {
		cc.HTTPClient = client
	}
}

// WithBaseURL points the client at another Gemini API host
func WithBaseURL(url string) Option {
	return func(cc *genai.ClientConfig) {
		cc.HTTPOptions.BaseURL = url
	}
}

// Client calls the Gemini generateContent endpoint
type Client struct {
	genai     *genai.Client
	model     string
	timeout   time.Duration
	minLength int
}

// NewClient builds a client from cfg. Options are applied after the fields
// derived from cfg so tests can point the client at a fake server.
func NewClient(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions.BaseURL = cfg.Endpoint
	}
	for _, opt := range opts {
		opt(cc)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := strings.TrimPrefix(cfg.Model, "models/")
	if model == "" {
		model = defaultModel
	}

	return &Client{
		genai:     client,
		model:     model,
		timeout:   cfg.Timeout,
		minLength: cfg.MinLength,
	}, nil
}

// Suggest returns a suggestion for description. Descriptions shorter than the
// configured minimum are not sent and yield (nil, nil).
func (c *Client) Suggest(ctx context.Context, description string) (*Suggestion, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) < c.minLength {
		logging.Debugf("suggest: description too short (%d < %d), skipping", utf8.RuneCountInString(description), c.minLength)
		return nil, nil
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	logging.Debugf("suggest: calling %s", c.model)
	resp, err := c.genai.Models.GenerateContent(ctx, c.model,
		genai.Text(fmt.Sprintf(promptTemplate, description)),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	return parseResponse(resp)
}

func parseResponse(resp *genai.GenerateContentResponse) (*Suggestion, error) {
	text := responseText(resp)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &suggestion); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}

	suggestion.Description = strings.TrimSpace(suggestion.Description)
	suggestion.Project = strings.TrimSpace(suggestion.Project)
	if suggestion.Description == "" {
		return nil, ErrEmptyResponse
	}
	return &suggestion, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text
		}
	}
	return ""
}

// stripCodeFence removes a ```json ... ``` wrapper some models add
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
