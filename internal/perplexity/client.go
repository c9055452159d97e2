package perplexity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
)

const (
	// DefaultBaseURL is the Perplexity API endpoint.
	DefaultBaseURL = "https://api.perplexity.ai"
	// DefaultModel is used when no model is configured or passed per call.
	DefaultModel = "sonar"
	// DefaultSystemPrompt conditions replies when the caller supplies none.
	DefaultSystemPrompt = "Be precise and concise."
	// EnvAPIKey is the environment variable consulted for the API key.
	EnvAPIKey = "PERPLEXITY_API_KEY"
)

// Client communicates with the Perplexity chat completions API.
// The API key and base URL are fixed for the lifetime of the client;
// Model is the per-client default and may be changed between calls.
type Client struct {
	BaseURL string
	Model   string
	apiKey  string

	HTTPClient *http.Client
	// Logger receives every error before it is returned. Defaults to stderr.
	Logger *log.Logger
}

// ChatOptions adjusts a single Chat or ChatStream call. When Messages is
// non-nil it is sent verbatim as the full conversation and the synthesized
// system/user pair (SystemPrompt plus the input argument) is skipped.
type ChatOptions struct {
	Model        string
	SystemPrompt string
	Messages     []Message
}

// NewClient resolves credentials and returns a ready client. The key is
// taken from the apiKey argument, falling back to the PERPLEXITY_API_KEY
// environment variable; construction fails with ErrMissingAPIKey when
// neither is set. Empty baseURL and model fall back to the defaults.
func NewClient(apiKey, baseURL, model string) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, &InitError{Err: err}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &InitError{Err: fmt.Errorf("base URL %q is not an absolute http(s) URL", baseURL)}
	}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Model:      model,
		apiKey:     apiKey,
		HTTPClient: http.DefaultClient,
		Logger:     log.New(os.Stderr, "", log.LstdFlags),
	}, nil
}

// Chat sends one buffered chat completion request and returns the content of
// the first choice. Errors are logged and returned, never swallowed.
func (c *Client) Chat(input string, opts *ChatOptions) (string, error) {
	resp, err := c.post(c.buildRequest(input, opts, false))
	if err != nil {
		return "", c.fail(err)
	}
	defer resp.Body.Close()

	var result ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", c.fail(fmt.Errorf("decode response: %w", err))
	}
	if len(result.Choices) == 0 {
		return "", c.fail(fmt.Errorf("response contained no choices"))
	}
	return result.Choices[0].Message.Content, nil
}

// ChatStream sends one streaming chat completion request. The returned
// Stream yields content fragments in arrival order; the caller must Close
// it. Errors raised before the stream opens are logged and returned here,
// mid-stream errors surface through Stream.Err.
func (c *Client) ChatStream(input string, opts *ChatOptions) (*Stream, error) {
	resp, err := c.post(c.buildRequest(input, opts, true))
	if err != nil {
		return nil, c.fail(err)
	}
	return newStream(resp), nil
}

// buildRequest resolves the effective model and conversation for one call.
func (c *Client) buildRequest(input string, opts *ChatOptions, stream bool) ChatCompletionRequest {
	if opts == nil {
		opts = &ChatOptions{}
	}
	model := opts.Model
	if model == "" {
		model = c.Model
	}
	msgs := opts.Messages
	if msgs == nil {
		prompt := opts.SystemPrompt
		if prompt == "" {
			prompt = DefaultSystemPrompt
		}
		msgs = []Message{
			{Role: RoleSystem, Content: prompt},
			{Role: RoleUser, Content: input},
		}
	}
	return ChatCompletionRequest{Model: model, Messages: msgs, Stream: stream}
}

func (c *Client) post(req ChatCompletionRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}
	return resp, nil
}

func (c *Client) fail(err error) error {
	if c.Logger != nil {
		c.Logger.Printf("perplexity: %v", err)
	}
	return err
}
