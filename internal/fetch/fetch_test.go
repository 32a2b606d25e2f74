// ABOUTME: Tests for the HTTP feed fetcher
// ABOUTME: Covers status handling, size limits, and request headers

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<rss>hello</rss>"))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	body, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(body) != "<rss>hello</rss>" {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestFetchSetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	if _, err := client.Fetch(context.Background(), server.URL); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(gotUA, "quill/") {
		t.Errorf("expected quill user agent, got %q", gotUA)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFetchOversizedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chunk := strings.Repeat("x", 1024*1024)
		for i := 0; i < 11; i++ {
			w.Write([]byte(chunk))
		}
	}))
	defer server.Close()

	client := NewClient(30 * time.Second)
	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for oversized response")
	}
}

func TestFetchContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(30 * time.Second)
	if _, err := client.Fetch(ctx, server.URL); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestNewClientZeroTimeoutDefaults(t *testing.T) {
	client := NewClient(0)
	if client.httpClient.Timeout != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %v", client.httpClient.Timeout)
	}
}
