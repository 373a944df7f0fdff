package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
)

// ProviderName identifies this client in generated reports.
const ProviderName = "gemini"

// Client calls the Gemini generateContent endpoint.
type Client struct {
	httpClient *resty.Client
	apiKey     string
	model      string
}

// NewClient creates a Gemini client. An empty model selects the default one.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		httpClient: resty.New().
			SetBaseURL(defaultBaseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(60 * time.Second),
		apiKey: apiKey,
		model:  model,
	}
}

// SetBaseURL points the client at another host.
func (c *Client) SetBaseURL(url string) *Client {
	c.httpClient.SetBaseURL(strings.TrimSuffix(url, "/"))
	return c
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Name reports the provider identifier.
func (c *Client) Name() string {
	return ProviderName
}

// Generate returns the text of the first candidate for prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("missing gemini api key")
	}

	reqBody := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 4096,
		},
	}

	var respBody generateResponse
	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetPathParam("model", c.model).
		SetBody(reqBody).
		SetResult(&respBody).
		SetError(apiErr).
		Post("/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		message := apiErr.Error.Message
		if message == "" {
			message = resp.String()
		}
		return "", fmt.Errorf("gemini api error: status=%d, message=%s", resp.StatusCode(), message)
	}

	if len(respBody.Candidates) == 0 {
		return "", errors.New("empty gemini response")
	}
	var b strings.Builder
	for _, p := range respBody.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("empty gemini response")
	}
	return text, nil
}
