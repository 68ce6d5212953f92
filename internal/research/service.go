// Package research runs AI-backed leadership contact lookups.
package research

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/contact-finder/internal/failure"
	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/resilience"
	"github.com/sells-group/contact-finder/pkg/openrouter"
)

// APIKeySetting names the setting that must be present before any lookup.
const APIKeySetting = "OPENROUTER_API_KEY"

const temperature = 0.2

// Config holds the settings a Service needs.
type Config struct {
	APIKey string
	Model  string
	Retry  resilience.RetryConfig
}

// Service performs contact research through an OpenRouter client.
type Service struct {
	client openrouter.Client
	cfg    Config
}

// NewService creates a research service.
func NewService(client openrouter.Client, cfg Config) *Service {
	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry = resilience.DefaultRetryConfig()
	}
	if cfg.Retry.ShouldRetry == nil {
		cfg.Retry.ShouldRetry = failure.RetryableUpstream
	}
	if cfg.Retry.OnRetry == nil {
		cfg.Retry.OnRetry = resilience.RetryLogger("openrouter", "chat_completion")
	}
	return &Service{client: client, cfg: cfg}
}

// Research asks the model for leadership contacts of q.CompanyName. A missing
// API key fails before any request is made.
func (s *Service) Research(ctx context.Context, q model.ContactQuery) (*model.ResearchResult, error) {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return nil, failure.ConfigurationMissing(APIKeySetting)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	modelID := strings.TrimSpace(q.Model)
	if modelID == "" {
		modelID = s.cfg.Model
	}
	temp := temperature
	req := openrouter.ChatCompletionRequest{
		Model:       modelID,
		Messages:    []openrouter.Message{{Role: "user", Content: BuildPrompt(q)}},
		Temperature: &temp,
	}

	log := zap.L().With(
		zap.String("company", q.CompanyName),
		zap.String("model", modelID),
	)
	log.Info("research: starting lookup")
	start := time.Now()

	resp, err := resilience.DoVal(ctx, s.cfg.Retry, func(ctx context.Context) (*openrouter.ChatCompletionResponse, error) {
		return s.client.ChatCompletion(ctx, req)
	})
	if err != nil {
		log.Warn("research: lookup failed", zap.Error(err))
		return nil, eris.Wrap(err, "research: chat completion")
	}

	result := ParseResponse(resp.Content())
	result.Query = q
	result.Model = modelID
	if resp.Model != "" {
		result.Model = resp.Model
	}
	result.Citations = mergeCitations(result.Citations, resp.Citations)

	log.Info("research: lookup complete",
		zap.String("kind", string(result.Kind)),
		zap.Int("contacts", len(result.Contacts)),
		zap.Int("citations", len(result.Citations)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &result, nil
}
