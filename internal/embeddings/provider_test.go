package embeddings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig(t *testing.T) {
	_, err := NewFromConfig(nil)
	assert.Error(t, err)

	_, err = NewFromConfig(&Config{})
	assert.Error(t, err)

	_, err = NewFromConfig(&Config{Provider: "word2vec"})
	assert.Error(t, err)

	p, err := NewFromConfig(&Config{Provider: "openai", Model: "text-embedding-3-small"})
	require.NoError(t, err)
	assert.Equal(t, "openai:text-embedding-3-small", p.ModelID())

	p, err = NewFromConfig(&Config{Provider: "ollama"})
	require.NoError(t, err)
	assert.Equal(t, "ollama:embeddinggemma", p.ModelID())

	p, err = NewFromConfig(&Config{Provider: "hashing", Model: "64"})
	require.NoError(t, err)
	assert.Equal(t, 64, p.Dim())

	_, err = NewFromConfig(&Config{Provider: "hashing", Model: "wide"})
	assert.Error(t, err)
}

func TestOpenAI_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gallop", body["input"])
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.5,0.25]}]}`))
	}))
	defer srv.Close()

	p := NewOpenAI("m", "k", srv.URL+"/")
	v, err := p.Embed(context.Background(), "gallop")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, v)
	assert.Equal(t, 2, p.Dim())
}

func TestOpenAI_ErrorsSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewOpenAI("m", "k", srv.URL).Embed(context.Background(), "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	_, err = NewOpenAI("", "k", srv.URL).Embed(context.Background(), "run")
	assert.Error(t, err)
	_, err = NewOpenAI("m", "", srv.URL).Embed(context.Background(), "run")
	assert.Error(t, err)
}

func TestOllama_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		_, _ = w.Write([]byte(`{"embedding":[1,0,0]}`))
	}))
	defer srv.Close()

	p := NewOllama(srv.URL, "mini")
	v, err := p.Embed(context.Background(), "trot")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, v)
	assert.Equal(t, 3, p.Dim())
}

func TestHashing_DeterministicAndNormalised(t *testing.T) {
	p := NewHashing(32)
	a, err := p.Embed(context.Background(), "Gallop")
	require.NoError(t, err)
	b, err := p.Embed(context.Background(), " gallop ")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	var sum float64
	for _, x := range a {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, sum, 1e-5)

	_, err = p.Embed(context.Background(), "  ")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Embed(ctx, "run")
	assert.ErrorIs(t, err, context.Canceled)
}
