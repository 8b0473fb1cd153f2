package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

// DeepSeekOptions configures the OpenAI compatible chat completions client.
type DeepSeekOptions struct {
	BaseURL string
	APIKey  string
	Model   string
	// HTTPClient defaults to a client without its own timeout; callers bound
	// each request through the context.
	HTTPClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type implDeepSeek struct {
	opts   DeepSeekOptions
	client *http.Client
	logger logger.Logger
}

// NewDeepSeek creates a Generator backed by the DeepSeek chat completions API
func NewDeepSeek(opts DeepSeekOptions, log logger.Logger) Generator {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.deepseek.com"
	}
	if opts.Model == "" {
		opts.Model = "deepseek-reasoner"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &implDeepSeek{
		opts:   opts,
		client: client,
		logger: log,
	}
}

func (d *implDeepSeek) Name() string {
	return "deepseek"
}

func (d *implDeepSeek) Generate(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: d.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildMessage(req)},
		},
	})
	if err != nil {
		return "", d.fail(KindBadRequest, 0, fmt.Errorf("encode request: %w", err))
	}

	url := strings.TrimRight(d.opts.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", d.fail(KindBadRequest, 0, fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+d.opts.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	d.logger.Debug(ctx, "POST %s model=%s payload=%d bytes", url, d.opts.Model, len(payload))

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return "", d.fail(transportKind(ctx, err), 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", d.fail(transportKind(ctx, err), resp.StatusCode, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", d.fail(classifyStatus(resp.StatusCode), resp.StatusCode, errors.New(apiMessage(body)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", d.fail(KindMalformed, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return "", d.fail(KindMalformed, resp.StatusCode, errors.New("response has no choices"))
	}

	content := cleanReply(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", d.fail(KindMalformed, resp.StatusCode, errors.New("empty completion"))
	}
	return content, nil
}

func (d *implDeepSeek) fail(kind Kind, status int, err error) error {
	return &Error{Kind: kind, Provider: d.Name(), Status: status, Err: err}
}

// transportKind classifies a failure that happened before a status code was read.
func transportKind(ctx context.Context, err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindUnavailable
}

func apiMessage(body []byte) string {
	var e apiErrorBody
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 512 {
		msg = msg[:512] + "..."
	}
	if msg == "" {
		return "empty response body"
	}
	return msg
}
