package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

// GeminiOptions configures the Gemini provider.
type GeminiOptions struct {
	APIKeys []string
	Model   string
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL string
}

type implGemini struct {
	opts   GeminiOptions
	logger logger.Logger

	mu         sync.Mutex
	currentKey int
	clients    map[int]*genai.Client
}

// NewGemini creates a Generator backed by the Gemini API. Several keys may be
// given; a rate limited key hands over to the next one.
func NewGemini(opts GeminiOptions, log logger.Logger) (Generator, error) {
	var keys []string
	for _, k := range opts.APIKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, errors.New("gemini: no API keys configured")
	}
	opts.APIKeys = keys
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}

	return &implGemini{
		opts:    opts,
		logger:  log,
		clients: make(map[int]*genai.Client),
	}, nil
}

func (g *implGemini) Name() string {
	return "gemini"
}

// Generate tries each key at most once. A rate limit on every key is
// returned as a rate limit error so the caller's backoff applies.
func (g *implGemini) Generate(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
	contents := []*genai.Content{genai.NewContentFromText(BuildMessage(req), genai.RoleUser)}

	var lastErr error
	for range len(g.opts.APIKeys) {
		idx, client, err := g.client(ctx)
		if err != nil {
			return "", &Error{Kind: KindBadRequest, Provider: g.Name(), Err: fmt.Errorf("create client: %w", err)}
		}

		result, err := client.Models.GenerateContent(ctx, g.opts.Model, contents, cfg)
		if err != nil {
			classified := g.classify(ctx, err)
			if classified.Kind == KindRateLimit && len(g.opts.APIKeys) > 1 {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = classified
				continue
			}
			return "", classified
		}

		text := cleanReply(result.Text())
		if text == "" {
			return "", &Error{Kind: KindMalformed, Provider: g.Name(), Status: 200, Err: errors.New("empty response from Gemini")}
		}
		return text, nil
	}

	return "", lastErr
}

func (g *implGemini) client(ctx context.Context) (int, *genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := g.currentKey
	if c, ok := g.clients[idx]; ok {
		return idx, c, nil
	}

	cc := &genai.ClientConfig{
		APIKey:  g.opts.APIKeys[idx],
		Backend: genai.BackendGeminiAPI,
	}
	if g.opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.opts.BaseURL}
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return idx, nil, err
	}
	g.clients[idx] = c
	return idx, c, nil
}

// rotateKey advances past idx unless another call already did.
func (g *implGemini) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.opts.APIKeys)
	}
}

func (g *implGemini) classify(ctx context.Context, err error) *Error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		kind := classifyStatus(apiErr.Code)
		if apiErr.Status == "RESOURCE_EXHAUSTED" {
			kind = KindRateLimit
		}
		return &Error{Kind: kind, Provider: g.Name(), Status: apiErr.Code, Err: err}
	}
	return &Error{Kind: transportKind(ctx, err), Provider: g.Name(), Err: err}
}
