package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
}

func TestGenerateReturnsCandidateText(t *testing.T) {
	var gotPrompt string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		gotPrompt = req.Contents[0].Parts[0].Text

		_ = json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{{Content: content{Parts: []part{{Text: "stay hydrated"}}}}},
		})
	})

	text, err := client.Generate(context.Background(), "summarize my week")
	require.NoError(t, err)
	assert.Equal(t, "stay hydrated", text)
	assert.Equal(t, "summarize my week", gotPrompt)
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	client := NewClient(Config{}, nil)

	_, err := client.Generate(context.Background(), "prompt")
	svcErr := apperrors.GetServiceError(err)
	require.NotNil(t, svcErr)
	assert.Equal(t, apperrors.CodeAINotConfigured, svcErr.Code)
}

func TestGenerateNormalizesFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   apperrors.Code
	}{
		{"forbidden key", http.StatusForbidden, `{"error":{"code":403,"status":"PERMISSION_DENIED"}}`, apperrors.CodeAINotConfigured},
		{"quota exhausted", http.StatusTooManyRequests, `{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota exceeded"}}`, apperrors.CodeAIQuotaExceeded},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"code":429,"status":"TOO_MANY_REQUESTS"}}`, apperrors.CodeAIRateLimited},
		{"server error", http.StatusInternalServerError, `{}`, apperrors.CodeAIOffline},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.Generate(context.Background(), "prompt")
			svcErr := apperrors.GetServiceError(err)
			require.NotNil(t, svcErr)
			assert.Equal(t, tc.want, svcErr.Code)
		})
	}
}

func TestGenerateFallsBackOnEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	text, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, fallbackText, text)
}

func TestGenerateOfflineOnConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	_, err := client.Generate(context.Background(), "prompt")
	svcErr := apperrors.GetServiceError(err)
	require.NotNil(t, svcErr)
	assert.Equal(t, apperrors.CodeAIOffline, svcErr.Code)
}
