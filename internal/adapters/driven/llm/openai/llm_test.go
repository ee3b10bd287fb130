package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNew_Defaults(t *testing.T) {
	d, err := New(Config{APIKey: "sk-test"})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, d.cfg.BaseURL)
	assert.Equal(t, DefaultModel, d.ModelName())
}

func TestDriver_ConnectAndQuery(t *testing.T) {
	var got chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/models":
			_, _ = w.Write([]byte(`{"data":[]}`))
		case "/chat/completions":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"pong"},"finish_reason":"stop"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	d, err := New(Config{APIKey: "sk-test", BaseURL: srv.URL, System: "terse"})
	require.NoError(t, err)
	require.NoError(t, d.Connect(context.Background()))

	answer, err := d.Query(context.Background(), "ping")

	require.NoError(t, err)
	assert.Equal(t, "pong", answer)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "ping", got.Messages[1].Content)
}

func TestDriver_QueryBeforeConnect(t *testing.T) {
	d, err := New(Config{APIKey: "sk-test"})
	require.NoError(t, err)

	_, err = d.Query(context.Background(), "ping")

	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestDriver_ConnectUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid key"}}`))
	}))
	defer srv.Close()

	d, err := New(Config{APIKey: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	err = d.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestDriver_QueryAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	d, err := New(Config{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, d.Connect(context.Background()))

	_, err = d.Query(context.Background(), "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestDriver_QueryNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			return
		}
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	d, err := New(Config{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, d.Connect(context.Background()))

	_, err = d.Query(context.Background(), "ping")
	assert.Error(t, err)
}
