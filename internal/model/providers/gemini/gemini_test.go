package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chatErrors "github.com/harunnryd/chatbot/internal/errors"
	"github.com/harunnryd/chatbot/internal/model/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wirePart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Role  string     `json:"role"`
	Parts []wirePart `json:"parts"`
}

type wireRequest struct {
	Contents          []wireContent `json:"contents"`
	SystemInstruction *wireContent  `json:"systemInstruction"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New(context.Background(), "gm-test", srv.URL)
	require.NoError(t, err)
	return p
}

func TestGenerate_MapsSystemInstructionAndRoles(t *testing.T) {
	var got wireRequest
	var path, key string

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.Header.Get("X-Goog-Api-Key")
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"France "},{"text":"won."}]},"finishReason":"STOP"}]}`)
	})

	resp, err := p.Generate(context.Background(), contract.CompletionRequest{
		Temperature: 0.7,
		Messages: []contract.Message{
			contract.System("You are a helpful assistant."),
			contract.User("Who won in 2018?"),
			contract.Assistant("Let me check."),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "France won.", resp.Content)
	assert.Equal(t, DefaultModel, resp.Model)
	assert.True(t, strings.HasSuffix(path, "models/"+DefaultModel+":generateContent"), path)
	assert.Equal(t, "gm-test", key)

	if assert.NotNil(t, got.SystemInstruction) && assert.Len(t, got.SystemInstruction.Parts, 1) {
		assert.Equal(t, "You are a helpful assistant.", got.SystemInstruction.Parts[0].Text)
	}
	if assert.Len(t, got.Contents, 2) {
		assert.Equal(t, "user", got.Contents[0].Role)
		assert.Equal(t, "Who won in 2018?", got.Contents[0].Parts[0].Text)
		assert.Equal(t, "model", got.Contents[1].Role)
		assert.Equal(t, "Let me check.", got.Contents[1].Parts[0].Text)
	}
	assert.InDelta(t, 0.7, got.GenerationConfig.Temperature, 1e-6)
}

func TestGenerate_CandidateWithoutTextIsMalformed(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[]},"finishReason":"SAFETY"}]}`)
	})

	_, err := p.Generate(context.Background(), contract.CompletionRequest{
		Messages: []contract.Message{contract.User("hi")},
	})
	require.Error(t, err)
	assert.True(t, chatErrors.IsCategory(err, chatErrors.ErrMalformedResponse))
}

func TestGenerate_RejectedKeyIsUpstream(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`)
	})

	_, err := p.Generate(context.Background(), contract.CompletionRequest{
		Messages: []contract.Message{contract.User("hi")},
	})
	require.Error(t, err)
	assert.True(t, chatErrors.IsCategory(err, chatErrors.ErrUpstream))
}
