package ollama

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

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_Defaults(t *testing.T) {
	d := New(Config{})

	assert.Equal(t, DefaultBaseURL, d.cfg.BaseURL)
	assert.Equal(t, DefaultModel, d.ModelName())
	assert.Equal(t, DefaultTimeout, d.client.Timeout)
}

func TestDriver_QueryBeforeConnect(t *testing.T) {
	d := New(Config{BaseURL: "http://127.0.0.1:1"})

	_, err := d.Query(context.Background(), "hello")

	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestDriver_ConnectAndQuery(t *testing.T) {
	var got generateRequest
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"models":[]}`))
		case "/api/generate":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(generateResponse{Response: "hi there", Done: true})
		default:
			http.NotFound(w, r)
		}
	})

	d := New(Config{BaseURL: srv.URL, Model: "mistral", System: "be brief", MaxTokens: 64})
	require.NoError(t, d.Connect(context.Background()))

	answer, err := d.Query(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "hi there", answer)
	assert.Equal(t, "mistral", got.Model)
	assert.Equal(t, "hello", got.Prompt)
	assert.Equal(t, "be brief", got.System)
	assert.False(t, got.Stream)
	require.NotNil(t, got.Options)
	assert.Equal(t, 64, got.Options.NumPredict)
}

func TestDriver_ConnectFails(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})

	d := New(Config{BaseURL: srv.URL})
	err := d.Connect(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	_, err = d.Query(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestDriver_QueryServerError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model not found"}`))
	})

	d := New(Config{BaseURL: srv.URL})
	require.NoError(t, d.Connect(context.Background()))

	_, err := d.Query(context.Background(), "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestDriver_Disconnect(t *testing.T) {
	srv := newServer(t, func(http.ResponseWriter, *http.Request) {})

	d := New(Config{BaseURL: srv.URL})
	require.NoError(t, d.Connect(context.Background()))
	require.NoError(t, d.Disconnect(context.Background()))

	_, err := d.Query(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestDriver_DisconnectWithoutConnect(t *testing.T) {
	d := New(Config{})
	assert.NoError(t, d.Disconnect(context.Background()))
}
