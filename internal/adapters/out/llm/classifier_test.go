package llm_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ordering/internal/adapters/out/llm"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/intent"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/session"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	require.NoError(t, err)
	return body
}

func newClassifier(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *llm.Classifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return llm.NewClassifier(llm.Config{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/",
		Model:   "test-model",
		Timeout: timeout,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func classifyRequest() ports.ClassifyRequest {
	return ports.ClassifyRequest{
		Utterance: "add 5 blue pens",
		Profile:   customer.Profile{ID: 7, Name: "Acme Corp", DefaultShippingAddress: "12 Harbour Road"},
		Order:     order.NewState(7),
		History: []session.Entry{
			{Role: session.RoleUser, Text: "hi"},
			{Role: session.RoleAgent, Text: "Hello Acme Corp! How can I help you today?"},
		},
	}
}

func TestClassify_SendsContextAndParsesReply(t *testing.T) {
	var request gjson.Result
	c := newClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		request = gjson.ParseBytes(body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionBody(t, `{"intent":"add_item","entities":{"items":[{"productName":"Blue Pen","quantity":5}]}}`))
	}, time.Second)

	got, err := c.Classify(t.Context(), classifyRequest())

	require.NoError(t, err)
	add, ok := got.(intent.AddItem)
	require.True(t, ok)
	assert.Equal(t, "Blue Pen", add.Items[0].ProductPhrase)

	assert.Equal(t, "test-model", request.Get("model").String())
	assert.Equal(t, "json_object", request.Get("response_format.type").String())
	assert.Equal(t, "system", request.Get("messages.0.role").String())

	system := request.Get("messages.0.content").String()
	for _, kind := range append(intent.Kinds(), intent.KindUnknown) {
		assert.Contains(t, system, "\n- "+string(kind)+": ", kind)
	}

	user := request.Get("messages.1.content").String()
	assert.Contains(t, user, `"name":"Acme Corp"`)
	assert.Contains(t, user, "User: hi\nAgent: Hello Acme Corp!")
	assert.Contains(t, user, `LATEST USER MESSAGE: "add 5 blue pens"`)
}

func TestClassify_UnparsableContentIsAFailure(t *testing.T) {
	c := newClassifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionBody(t, "I think you want pens."))
	}, time.Second)

	got, err := c.Classify(t.Context(), classifyRequest())

	require.ErrorIs(t, err, ports.ErrUnparsableClassification)
	assert.Nil(t, got)
}

func TestClassify_ServerError(t *testing.T) {
	calls := 0
	c := newClassifier(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}, time.Second)

	_, err := c.Classify(t.Context(), classifyRequest())

	require.Error(t, err)
	assert.Equal(t, 1, calls, "requests are not retried")
}

func TestClassify_NoChoices(t *testing.T) {
	c := newClassifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}, time.Second)

	_, err := c.Classify(t.Context(), classifyRequest())

	require.ErrorIs(t, err, llm.ErrEmptyCompletion)
}

func TestClassify_Timeout(t *testing.T) {
	c := newClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 50*time.Millisecond)

	_, err := c.Classify(t.Context(), classifyRequest())

	require.Error(t, err)
}
