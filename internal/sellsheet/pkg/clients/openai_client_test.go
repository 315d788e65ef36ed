package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sellsheet_api/pkg/logger"
)

type fakeKeywords struct {
	dict map[string]string
	err  error
	got  [2]string
}

func (f *fakeKeywords) Keywords(_ context.Context, categoryID, language string) (map[string]string, error) {
	f.got = [2]string{categoryID, language}
	return f.dict, f.err
}

func newChatServer(t *testing.T, content string, seen *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(seen))

		resp := map[string]interface{}{
			"choices": []interface{}{
				map[string]interface{}{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClient_TranslateParameters(t *testing.T) {
	var seen chatRequest
	srv := newChatServer(t, "```json\n{\"Farbe\": \"Schwarz\", \"Anzahl\": 4, \"Leer\": null}\n```", &seen)
	c := NewOpenAIClient(srv.URL, "sk-test", "", nil, logger.Nop())

	out, err := c.TranslateParameters(context.Background(), map[string]string{"Kolor": "czarny", "Liczba": "4"}, "de")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Farbe": "Schwarz", "Anzahl": "4"}, out)

	assert.Equal(t, DefaultOpenAIModel, seen.Model)
	assert.Equal(t, "json_object", seen.ResponseFormat.Type)
	require.Len(t, seen.Messages, 2)
	assert.Contains(t, seen.Messages[0].Content, "German")
	assert.JSONEq(t, `{"Kolor":"czarny","Liczba":"4"}`, seen.Messages[1].Content)
}

func TestOpenAIClient_TranslateParameters_Empty(t *testing.T) {
	c := NewOpenAIClient("http://127.0.0.1:0", "sk-test", "", nil, logger.Nop())
	out, err := c.TranslateParameters(context.Background(), nil, "de")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestOpenAIClient_TranslateTitleDescription(t *testing.T) {
	var seen chatRequest
	srv := newChatServer(t, `{"title":"Scheinwerfer links","description":"Guter Zustand"}`, &seen)
	kw := &fakeKeywords{dict: map[string]string{"lampa": "scheinwerfer"}}
	c := NewOpenAIClient(srv.URL, "sk-test", "gpt-test", kw, logger.Nop())

	got, err := c.TranslateTitleDescription(context.Background(), "LAMPA Lewa", "Stan Dobry", "254664", "de")
	require.NoError(t, err)
	assert.Equal(t, "Scheinwerfer links", got.Name)
	assert.Equal(t, "Guter Zustand", got.Description)

	assert.Equal(t, [2]string{"254664", "de"}, kw.got)
	assert.Equal(t, "gpt-test", seen.Model)
	assert.Contains(t, seen.Messages[0].Content, `"lampa": "scheinwerfer"`)
	assert.Equal(t, "Title: lampa lewa\nDescription: stan dobry", seen.Messages[1].Content)
}

func TestOpenAIClient_Failures(t *testing.T) {
	t.Run("keyword source error", func(t *testing.T) {
		boom := errors.New("db down")
		c := NewOpenAIClient("http://127.0.0.1:0", "sk-test", "", &fakeKeywords{err: boom}, logger.Nop())
		_, err := c.TranslateTitleDescription(context.Background(), "a", "b", "1", "de")
		assert.True(t, errors.Is(err, boom))
	})

	t.Run("not json", func(t *testing.T) {
		var seen chatRequest
		srv := newChatServer(t, "Sorry, I cannot help", &seen)
		c := NewOpenAIClient(srv.URL, "sk-test", "", nil, logger.Nop())
		_, err := c.TranslateParameters(context.Background(), map[string]string{"a": "b"}, "de")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected JSON")
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()
		c := NewOpenAIClient(srv.URL, "sk-test", "", nil, logger.Nop())
		_, err := c.TranslateParameters(context.Background(), map[string]string{"a": "b"}, "de")
		assert.True(t, errors.Is(err, ErrEmptyCompletion))
	})
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFence(` {"a":1} `))
}
