package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikiquiz/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*OpenAIClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewOpenAIClientWithConfig(cfg, "test-model", 0.7, 0), srv
}

func completionJSON(content string) string {
	resp := map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]interface{}{
			{
				"index": 0,
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestOpenAIClient_Complete_Success(t *testing.T) {
	var gotReq openai.ChatCompletionRequest
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionJSON("quiz text")))
	})
	defer srv.Close()

	text, err := client.Complete(context.Background(), "system instruction", "user message")
	require.NoError(t, err)
	assert.Equal(t, "quiz text", text)

	assert.Equal(t, "test-model", gotReq.Model)
	assert.InDelta(t, 0.7, float64(gotReq.Temperature), 0.001)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, gotReq.Messages[0].Role)
	assert.Equal(t, "system instruction", gotReq.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, gotReq.Messages[1].Role)
	assert.Equal(t, "user message", gotReq.Messages[1].Content)
}

func TestOpenAIClient_Complete_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode domain.ErrorCode
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantCode: domain.ErrRateLimited},
		{name: "payment required", status: http.StatusPaymentRequired, wantCode: domain.ErrPaymentRequired},
		{name: "server error", status: http.StatusInternalServerError, wantCode: domain.ErrCompletionFailed},
		{name: "bad request", status: http.StatusBadRequest, wantCode: domain.ErrCompletionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error": {"message": "upstream says no", "type": "test_error"}}`))
			})
			defer srv.Close()

			_, err := client.Complete(context.Background(), "s", "u")
			require.Error(t, err)

			var domainErr *domain.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestOpenAIClient_Complete_NoChoices(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-test", "object": "chat.completion", "choices": []}`))
	})
	defer srv.Close()

	_, err := client.Complete(context.Background(), "s", "u")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCompletionFailed, domainErr.Code)
}

func TestOpenAIClient_Complete_TimeoutFromConfig(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	client := NewOpenAIClientWithConfig(cfg, "test-model", 0.7, 50*time.Millisecond)

	_, err := client.Complete(context.Background(), "s", "u")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCompletionFailed, domainErr.Code)
}

func TestNewOpenAIClient_Validation(t *testing.T) {
	_, err := NewOpenAIClient("", "model", 0.7, 30*time.Second)
	assert.Error(t, err)

	_, err = NewOpenAIClient("key", "", 0.7, 30*time.Second)
	assert.Error(t, err)

	client, err := NewOpenAIClient("key", "model", 0.7, 30*time.Second)
	assert.NoError(t, err)
	assert.NotNil(t, client)
}
