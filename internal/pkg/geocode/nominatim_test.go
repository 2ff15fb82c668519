package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimReverse_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "51.5", r.URL.Query().Get("lat"))
		assert.Equal(t, "-0.12", r.URL.Query().Get("lon"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name": "1 Main Street, Springfield"}`))
	}))
	defer server.Close()

	client := NewNominatimClient(server.URL, "test-agent", time.Second)
	address, err := client.Reverse(context.Background(), 51.5, -0.12)
	require.NoError(t, err)
	assert.Equal(t, "1 Main Street, Springfield", address)
}

func TestNominatimReverse_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer server.Close()

	client := NewNominatimClient(server.URL, "test-agent", time.Second)
	_, err := client.Reverse(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNominatimReverse_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewNominatimClient(server.URL, "test-agent", time.Second)
	_, err := client.Reverse(context.Background(), 51.5, -0.12)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNominatimReverse_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewNominatimClient(server.URL, "test-agent", 20*time.Millisecond)
	_, err := client.Reverse(context.Background(), 51.5, -0.12)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNopResolver(t *testing.T) {
	_, err := NopResolver{}.Reverse(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
}
