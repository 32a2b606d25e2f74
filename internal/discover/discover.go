// ABOUTME: Feed autodiscovery for URLs that point at HTML pages instead of feeds
// ABOUTME: Resolves <link rel="alternate"> elements and probes common feed paths

package discover

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/quillfeed/quill/internal/fetch"
	"github.com/quillfeed/quill/internal/parse"
)

// commonFeedPaths are probed when a page advertises no feed link.
var commonFeedPaths = []string{
	"/feed.xml",
	"/feed",
	"/rss.xml",
	"/rss",
	"/atom.xml",
	"/index.xml",
}

var (
	ErrNoFeedFound = errors.New("no RSS/Atom feed found at URL")
	ErrInvalidURL  = errors.New("invalid URL")
)

// Resolve turns a user-supplied URL into a feed URL. If the URL already
// serves a feed document it is returned as-is; if it serves HTML, the
// page's <link rel="alternate"> elements are followed, then common feed
// paths are probed as a last resort.
func Resolve(ctx context.Context, client *fetch.Client, inputURL string) (string, error) {
	base, err := url.Parse(inputURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("%w: missing scheme or host", ErrInvalidURL)
	}

	body, err := client.Fetch(ctx, inputURL)
	if err != nil {
		return "", err
	}
	if isFeed(body) {
		return inputURL, nil
	}

	for _, candidate := range feedLinks(body, base) {
		if probe(ctx, client, candidate) {
			return candidate, nil
		}
	}

	probeBase := &url.URL{Scheme: base.Scheme, Host: base.Host}
	for _, path := range commonFeedPaths {
		candidate := probeBase.String() + path
		if probe(ctx, client, candidate) {
			return candidate, nil
		}
	}

	return "", ErrNoFeedFound
}

func isFeed(body []byte) bool {
	_, err := parse.Parse(body)
	return err == nil
}

func probe(ctx context.Context, client *fetch.Client, feedURL string) bool {
	body, err := client.Fetch(ctx, feedURL)
	if err != nil {
		return false
	}
	return isFeed(body)
}

// feedLinks extracts feed URLs from an HTML page's <link rel="alternate">
// elements, resolved against the page URL.
func feedLinks(htmlBody []byte, base *url.URL) []string {
	doc, err := html.Parse(strings.NewReader(string(htmlBody)))
	if err != nil {
		return nil
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, linkType, href string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = attr.Val
				case "type":
					linkType = attr.Val
				case "href":
					href = attr.Val
				}
			}
			if rel == "alternate" && isFeedContentType(linkType) && href != "" {
				if ref, err := url.Parse(href); err == nil {
					links = append(links, base.ResolveReference(ref).String())
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links
}

func isFeedContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "rss") ||
		strings.Contains(contentType, "atom") ||
		strings.Contains(contentType, "xml")
}
