package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsmart/spendsmart-api/config"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewGeminiService(config.ChatConfig{APIKey: "test-key", Model: "gemini-2.5-flash"})
	svc.baseURL = server.URL
	return svc
}

func geminiReply(text string) []byte {
	resp := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
			},
		},
	}
	data, _ := json.Marshal(resp)
	return data
}

func TestCompleteReturnsTrimmedText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	svc := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write(geminiReply("  Your balance is ₹800.  \n"))
	})

	text, err := svc.Complete(context.Background(), "What's my balance?")
	require.NoError(t, err)

	assert.Equal(t, "Your balance is ₹800.", text)
	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "What's my balance?", gotBody.Contents[0].Parts[0].Text)
}

func TestCompleteOverloaded(t *testing.T) {
	svc := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	})

	_, err := svc.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrOverloaded)
}

func TestCompleteGenericFailure(t *testing.T) {
	svc := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, err := svc.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrOverloaded)
}

func TestCompleteEmptyResponseUsesFallback(t *testing.T) {
	svc := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	text, err := svc.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, text)
}

func TestCompleteRequiresAPIKey(t *testing.T) {
	svc := NewGeminiService(config.ChatConfig{Model: "gemini-2.5-flash"})

	_, err := svc.Complete(context.Background(), "hi")
	assert.Error(t, err)
}
