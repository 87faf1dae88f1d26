package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harunnryd/chatbot/internal/model/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LiftsSystemMessagesAndReadsText(t *testing.T) {
	var body map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-7-sonnet-latest","content":[{"type":"text","text":"France."}],"stop_reason":"end_turn","usage":{"input_tokens":12,"output_tokens":3}}`)
	}))
	defer srv.Close()

	p := New("sk-ant-test", srv.URL)
	resp, err := p.Generate(context.Background(), contract.CompletionRequest{
		Temperature: 0.7,
		Messages: []contract.Message{
			contract.System("You are a helpful assistant."),
			contract.User("Who won in 2018?"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "France.", resp.Content)
	assert.Equal(t, DefaultModel, body["model"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-9)

	system, ok := body["system"].([]any)
	if assert.True(t, ok) && assert.Len(t, system, 1) {
		assert.Equal(t, "You are a helpful assistant.", system[0].(map[string]any)["text"])
	}
	messages, ok := body["messages"].([]any)
	if assert.True(t, ok) && assert.Len(t, messages, 1) {
		assert.Equal(t, "user", messages[0].(map[string]any)["role"])
	}
}
