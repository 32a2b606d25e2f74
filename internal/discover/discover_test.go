// ABOUTME: Tests for feed autodiscovery from HTML pages
// ABOUTME: Covers direct feeds, link rel=alternate, and common-path probing

package discover

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillfeed/quill/internal/fetch"
)

const sampleRSS = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Test</title><link>https://example.com</link><description>d</description>
</channel></rss>`

func TestResolveDirectFeedURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleRSS)
	}))
	defer server.Close()

	got, err := Resolve(context.Background(), fetch.NewClient(0), server.URL)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != server.URL {
		t.Errorf("direct feed URL should pass through, got %q", got)
	}
}

func TestResolveLinkAlternate(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head>
<link rel="alternate" type="application/rss+xml" href="/custom/feed.rss"/>
</head><body>welcome</body></html>`)
	})
	mux.HandleFunc("/custom/feed.rss", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleRSS)
	})

	got, err := Resolve(context.Background(), fetch.NewClient(0), server.URL)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != server.URL+"/custom/feed.rss" {
		t.Errorf("expected advertised feed URL, got %q", got)
	}
}

func TestResolveProbesCommonPaths(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/atom.xml" {
			fmt.Fprint(w, sampleRSS)
			return
		}
		if r.URL.Path == "/" {
			fmt.Fprint(w, `<html><head></head><body>no feed links here</body></html>`)
			return
		}
		http.NotFound(w, r)
	})

	got, err := Resolve(context.Background(), fetch.NewClient(0), server.URL)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != server.URL+"/atom.xml" {
		t.Errorf("expected probed feed path, got %q", got)
	}
}

func TestResolveNoFeedFound(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, `<html><body>just a page</body></html>`)
			return
		}
		http.NotFound(w, r)
	})

	_, err := Resolve(context.Background(), fetch.NewClient(0), server.URL)
	if !errors.Is(err, ErrNoFeedFound) {
		t.Fatalf("expected ErrNoFeedFound, got %v", err)
	}
}

func TestResolveInvalidURL(t *testing.T) {
	for _, bad := range []string{"not a url at all ://", "example.com/feed", ""} {
		_, err := Resolve(context.Background(), fetch.NewClient(0), bad)
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("Resolve(%q): expected ErrInvalidURL, got %v", bad, err)
		}
	}
}
