package research

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/contact-finder/pkg/openrouter"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) ChatCompletion(ctx context.Context, req openrouter.ChatCompletionRequest) (*openrouter.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openrouter.ChatCompletionResponse), args.Error(1)
}

func (m *mockClient) ListModels(ctx context.Context) ([]openrouter.Model, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]openrouter.Model), args.Error(1)
}

func chatResponse(content string) *openrouter.ChatCompletionResponse {
	return &openrouter.ChatCompletionResponse{
		Choices: []openrouter.Choice{{Message: openrouter.Message{Role: "assistant", Content: content}}},
	}
}
