package readwise

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

func TestSaveDigest(t *testing.T) {
	var got savePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token tkn", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(Config{Token: "tkn", SaveURL: srv.URL}, zap.NewNop())
	digest := entity.Digest{
		Title:     "[Short] Sample - Alice",
		SourceURL: "https://youtu.be/abc",
		Author:    "Alice",
		CoverURL:  "https://img.example/c.jpg",
		HTML:      "<p>hi</p>",
	}

	err := client.SaveDigest(context.Background(), digest, []string{"Tech"})
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/abc", got.URL)
	assert.Equal(t, "[Short] Sample - Alice", got.Title)
	assert.Equal(t, "<p>hi</p>", got.HTML)
	assert.Equal(t, []string{"Tech"}, got.Tags)
	assert.Equal(t, "RainDigest", got.SavedUsing)
	assert.Equal(t, "https://img.example/c.jpg", got.ImageURL)
}

func TestSaveDigestNoTokenSkips(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(Config{Token: "", SaveURL: srv.URL}, zap.NewNop())
	err := client.SaveDigest(context.Background(), entity.Digest{Title: "x"}, nil)
	require.NoError(t, err)
	assert.False(t, called)
}

func TestSaveDigestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"bad html"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(Config{Token: "tkn", SaveURL: srv.URL}, zap.NewNop())
	err := client.SaveDigest(context.Background(), entity.Digest{Title: "x"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
