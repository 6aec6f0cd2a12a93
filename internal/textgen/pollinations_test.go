package textgen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollinationsClient_Generate(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"hardSkills":"go, sql","softSkills":""}`))
	}))
	defer server.Close()

	client := NewPollinationsClient(Config{BaseURL: server.URL})
	resp, err := client.Generate(context.Background(), "extract skills: go & sql")
	require.NoError(t, err)

	assert.Equal(t, `{"hardSkills":"go, sql","softSkills":""}`, resp)

	// Prompt travels URL-encoded in the path
	decoded, err := url.PathUnescape(gotPath)
	require.NoError(t, err)
	assert.Equal(t, "/extract skills: go & sql", decoded)
}

func TestPollinationsClient_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewPollinationsClient(Config{BaseURL: server.URL})
	_, err := client.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestPollinationsClient_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewPollinationsClient(Config{BaseURL: server.URL, Timeout: 30 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Generate(ctx, "slow request")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Provider: "smoke-signals"})
	require.Error(t, err)
}

func TestNewClient_DefaultsToPollinations(t *testing.T) {
	client, err := NewClient(context.Background(), Config{BaseURL: "https://example.test"})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	_, ok := client.(*PollinationsClient)
	assert.True(t, ok)
}
