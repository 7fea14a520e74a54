package bingwallhttp

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tanq16/bingwall/internal/utils"
)

func TestFetch(t *testing.T) {
	payload := bytes.Repeat([]byte{0xff, 0xd8, 0x00, 0x42}, 4096)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(payload)
	}))
	defer server.Close()

	data, err := Fetch(context.Background(), utils.NewHTTPClient(utils.HTTPClientConfig{}), server.URL+"/th?id=a.jpg")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("expected %d bytes matching payload, got %d bytes", len(payload), len(data))
	}
}

func TestFetchStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), utils.NewHTTPClient(utils.HTTPClientConfig{}), server.URL)
	if !errors.Is(err, utils.ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
	var statusErr *utils.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected StatusError 403, got %v", err)
	}
}

func TestFetchCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("unused"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fetch(ctx, utils.NewHTTPClient(utils.HTTPClientConfig{}), server.URL)
	if !errors.Is(err, utils.ErrFetch) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected ErrFetch wrapping context.Canceled, got %v", err)
	}
}
