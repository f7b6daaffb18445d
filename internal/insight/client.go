package insight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/julianstephens/alog/internal/constants"
	"github.com/julianstephens/alog/internal/logger"
	"github.com/julianstephens/alog/internal/models"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com"

var (
	ErrNoAPIKey      = errors.New("API Key not found")
	ErrCommunication = errors.New("COMMUNICATION FAILURE WITH MAIN FRAME.")
	ErrEmptyResponse = errors.New("SYSTEM ERROR: NO RESPONSE GENERATED.")
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient generates text through the Gemini API.
type GeminiClient struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewGeminiClient returns a client for model, falling back to the default
// model when empty.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = constants.DefaultInsightModel
	}
	return &GeminiClient{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *GeminiClient) client(ctx context.Context) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:     c.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.HTTPClient,
	}
	if c.BaseURL != "" {
		cfg.HTTPOptions.BaseURL = c.BaseURL
	}
	return genai.NewClient(ctx, cfg)
}

// Generate sends prompt and returns the text of the first candidate. Client
// setup, transport and HTTP failures surface as ErrCommunication.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return "", ErrNoAPIKey
	}

	client, err := c.client(ctx)
	if err != nil {
		logger.Error("Insight client setup failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrCommunication, err)
	}

	model := c.Model
	if model == "" {
		model = constants.DefaultInsightModel
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		logger.Error("Insight request failed", "model", model, "error", err)
		return "", fmt.Errorf("%w: %v", ErrCommunication, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Report builds the digest for the window ending at today and asks gen for
// an analysis of it.
func Report(ctx context.Context, gen Generator, questions []models.Question, log models.Log, today time.Time) (string, error) {
	digest := BuildDigest(questions, log, today, constants.InsightDigestDays)
	logger.Debug("Requesting insight", "digest_bytes", len(digest))
	return gen.Generate(ctx, BuildPrompt(digest))
}
