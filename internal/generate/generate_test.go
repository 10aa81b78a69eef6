// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/answer-engine/pkg/types"
)

func fakeOllama(t *testing.T, reply string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{Role: "assistant", Content: reply}})
	}))
}

func TestGenerate(t *testing.T) {
	var got chatRequest
	srv := fakeOllama(t, "Paris is the capital of France.", &got)
	defer srv.Close()

	c := NewClient(types.GenerationConfig{Endpoint: srv.URL, Model: "llama3.2:3b"}, srv.Client())
	reply, err := c.Generate(context.Background(), Request{
		Query:       "capital of France",
		Persona:     "You are a concise assistant.",
		Mode:        types.IntentChat,
		Temperature: 0.7,
		MaxTokens:   512,
	})
	require.NoError(t, err)
	assert.Equal(t, "Paris is the capital of France.", reply)

	assert.Equal(t, "llama3.2:3b", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.7, got.Options["temperature"])
	require.Len(t, got.Messages, 2)
	assert.Equal(t, types.RoleSystem, got.Messages[0].Role)
	assert.Equal(t, "capital of France", got.Messages[1].Content)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(types.GenerationConfig{Endpoint: srv.URL, Model: "nope"}, srv.Client())
	_, err := c.Generate(context.Background(), Request{Query: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGenerateUnreachable(t *testing.T) {
	c := NewClient(types.GenerationConfig{Endpoint: "http://127.0.0.1:1", Model: "m"}, nil)
	_, err := c.Generate(context.Background(), Request{Query: "hi"})
	require.Error(t, err)
}

func TestGenerateTrimsStopMarker(t *testing.T) {
	srv := fakeOllama(t, "Blue.\nUser: what about red?", nil)
	defer srv.Close()

	c := NewClient(types.GenerationConfig{Endpoint: srv.URL, Model: "m"}, srv.Client())
	reply, err := c.Generate(context.Background(), Request{Query: "favorite color"})
	require.NoError(t, err)
	assert.Equal(t, "Blue.", reply)
}

func TestBuildMessagesWindowsHistory(t *testing.T) {
	history := make([]types.Message, 6)
	for i := range history {
		role := types.RoleUser
		if i%2 == 1 {
			role = types.RoleAssistant
		}
		history[i] = types.Message{Role: role, Content: string(rune('a' + i))}
	}

	msgs := BuildMessages(Request{
		Query:   "next",
		Persona: "p",
		History: history,
		Window:  4,
	})
	// system + 4 windowed history + query
	require.Len(t, msgs, 6)
	assert.Equal(t, "c", msgs[1].Content)
	assert.Equal(t, "f", msgs[4].Content)
	assert.Equal(t, "next", msgs[5].Content)
}

func TestBuildMessagesDeepThink(t *testing.T) {
	msgs := BuildMessages(Request{Query: "q", Persona: "p", Mode: types.IntentDeepThink})
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, "step by step")
}

func TestBuildMessagesDigest(t *testing.T) {
	msgs := BuildMessages(Request{Query: "q", Persona: "p", Digest: "weather in Paris: 18°C"})
	require.Len(t, msgs, 3)
	assert.Equal(t, types.RoleSystem, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "18°C")
}
