package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-finder/internal/failure"
	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/resilience"
	"github.com/sells-group/contact-finder/pkg/openrouter"
)

func testConfig() Config {
	return Config{
		APIKey: "sk-test",
		Model:  "perplexity/sonar-pro",
		Retry:  resilience.RetryConfig{MaxAttempts: 3},
	}
}

func TestResearch_MissingAPIKeyFailsFast(t *testing.T) {
	client := &mockClient{}
	cfg := testConfig()
	cfg.APIKey = "  "
	svc := NewService(client, cfg)

	res, err := svc.Research(context.Background(), model.ContactQuery{CompanyName: "Acme"})

	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, failure.KindConfigurationMissing, failure.KindOf(err))
	assert.Contains(t, err.Error(), "OPENROUTER_API_KEY")
	client.AssertNotCalled(t, "ChatCompletion", mock.Anything, mock.Anything)
}

func TestResearch_InvalidQuery(t *testing.T) {
	client := &mockClient{}
	svc := NewService(client, testConfig())

	_, err := svc.Research(context.Background(), model.ContactQuery{CompanyName: " "})

	require.Error(t, err)
	assert.Equal(t, failure.KindInvalidInput, failure.KindOf(err))
	client.AssertNotCalled(t, "ChatCompletion", mock.Anything, mock.Anything)
}

func TestResearch_Structured(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{}
	resp := chatResponse(tableAnswer)
	resp.Citations = []string{"https://acme.com/team", "https://extra.example.com"}
	client.On("ChatCompletion", ctx, mock.MatchedBy(func(req openrouter.ChatCompletionRequest) bool {
		return req.Model == "perplexity/sonar-pro" &&
			len(req.Messages) == 1 &&
			req.Messages[0].Role == "user" &&
			req.Temperature != nil && *req.Temperature == 0.2
	})).Return(resp, nil).Once()

	svc := NewService(client, testConfig())
	q := model.ContactQuery{CompanyName: "Acme Corp", Website: "acme.com"}

	res, err := svc.Research(ctx, q)

	require.NoError(t, err)
	assert.Equal(t, q, res.Query)
	assert.Equal(t, "perplexity/sonar-pro", res.Model)
	assert.Equal(t, model.ResultStructured, res.Kind)
	assert.Len(t, res.Contacts, 2)
	assert.Len(t, res.Citations, 4)
	assert.Equal(t, "https://extra.example.com", res.Citations[3].URL)
	client.AssertExpectations(t)
}

func TestResearch_ModelOverride(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{}
	client.On("ChatCompletion", ctx, mock.MatchedBy(func(req openrouter.ChatCompletionRequest) bool {
		return req.Model == "perplexity/sonar"
	})).Return(chatResponse("No contacts found."), nil).Once()

	svc := NewService(client, testConfig())

	res, err := svc.Research(ctx, model.ContactQuery{CompanyName: "Acme", Model: "perplexity/sonar"})

	require.NoError(t, err)
	assert.Equal(t, "perplexity/sonar", res.Model)
	assert.Equal(t, model.ResultRawText, res.Kind)
	assert.Equal(t, "No contacts found.", res.Raw)
	client.AssertExpectations(t)
}

func TestResearch_RetriesTransientFailure(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{}
	client.On("ChatCompletion", ctx, mock.Anything).
		Return(nil, failure.Status(503, errors.New("openrouter: unexpected status 503: overloaded"))).Once()
	client.On("ChatCompletion", ctx, mock.Anything).
		Return(chatResponse("plain answer"), nil).Once()

	svc := NewService(client, testConfig())

	res, err := svc.Research(ctx, model.ContactQuery{CompanyName: "Acme"})

	require.NoError(t, err)
	assert.Equal(t, "plain answer", res.Raw)
	client.AssertNumberOfCalls(t, "ChatCompletion", 2)
}

func TestResearch_AuthFailureNotRetried(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{}
	client.On("ChatCompletion", ctx, mock.Anything).
		Return(nil, failure.Status(401, errors.New("openrouter: unexpected status 401: No auth credentials found"))).Once()

	svc := NewService(client, testConfig())

	_, err := svc.Research(ctx, model.ContactQuery{CompanyName: "Acme"})

	require.Error(t, err)
	assert.Equal(t, failure.KindHTTPStatus, failure.KindOf(err))
	assert.Equal(t, 401, failure.StatusCodeOf(err))
	assert.Contains(t, failure.Message(err), "No auth credentials found")
	client.AssertNumberOfCalls(t, "ChatCompletion", 1)
}

func TestResearch_NetworkFailureExhaustsAttempts(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{}
	client.On("ChatCompletion", ctx, mock.Anything).
		Return(nil, failure.New(failure.KindNetwork, errors.New("openrouter: request timed out")))

	svc := NewService(client, testConfig())

	_, err := svc.Research(ctx, model.ContactQuery{CompanyName: "Acme"})

	require.Error(t, err)
	assert.Equal(t, failure.KindNetwork, failure.KindOf(err))
	client.AssertNumberOfCalls(t, "ChatCompletion", 3)
}

func TestNewService_DefaultsRetry(t *testing.T) {
	svc := NewService(&mockClient{}, Config{APIKey: "k"})

	assert.Equal(t, 3, svc.cfg.Retry.MaxAttempts)
	assert.NotNil(t, svc.cfg.Retry.ShouldRetry)
	assert.NotNil(t, svc.cfg.Retry.OnRetry)
}

func TestModels_FiltersWebCapable(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{}
	client.On("ListModels", ctx).Return([]openrouter.Model{
		{ID: "perplexity/sonar-pro"},
		{ID: "openai/gpt-4o"},
		{ID: "openai/gpt-4o:online"},
		{ID: "Perplexity/Sonar"},
	}, nil)

	svc := NewService(client, testConfig())

	ids, err := svc.Models(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"perplexity/sonar-pro", "openai/gpt-4o:online", "Perplexity/Sonar"}, ids)
}

func TestModels_MissingAPIKey(t *testing.T) {
	client := &mockClient{}
	svc := NewService(client, Config{})

	_, err := svc.Models(context.Background())

	require.Error(t, err)
	assert.Equal(t, failure.KindConfigurationMissing, failure.KindOf(err))
	client.AssertNotCalled(t, "ListModels", mock.Anything)
}

func TestModels_Error(t *testing.T) {
	ctx := context.Background()
	client := &mockClient{}
	client.On("ListModels", ctx).Return(nil, failure.Status(500, errors.New("boom")))

	svc := NewService(client, testConfig())

	_, err := svc.Models(ctx)

	require.Error(t, err)
	assert.Equal(t, failure.KindHTTPStatus, failure.KindOf(err))
}

func TestPickModel(t *testing.T) {
	available := []string{"perplexity/sonar", "perplexity/sonar-pro"}

	assert.Equal(t, "perplexity/sonar-pro", PickModel(available, "perplexity/sonar-pro"))
	assert.Equal(t, "perplexity/sonar", PickModel(available, "openai/gpt-4o"))
	assert.Equal(t, "openai/gpt-4o", PickModel(nil, "openai/gpt-4o"))
}
