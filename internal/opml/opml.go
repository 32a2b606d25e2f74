// ABOUTME: OPML parsing and writing for feed subscription import/export
// ABOUTME: Tree-structured XML handling with one level of category folders

package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Feed is one subscription from an OPML document, with its enclosing
// folder carried as the category.
type Feed struct {
	URL      string
	Title    string
	Category string
}

// Document is a parsed OPML subscription list.
type Document struct {
	Title string
	Feeds []Feed
}

// XML wire structs

type opmlXML struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    headXML  `xml:"head"`
	Body    bodyXML  `xml:"body"`
}

type headXML struct {
	Title string `xml:"title"`
}

type bodyXML struct {
	Outlines []outlineXML `xml:"outline"`
}

type outlineXML struct {
	Text     string       `xml:"text,attr"`
	Title    string       `xml:"title,attr,omitempty"`
	Type     string       `xml:"type,attr,omitempty"`
	XMLURL   string       `xml:"xmlUrl,attr,omitempty"`
	Children []outlineXML `xml:"outline,omitempty"`
}

// Parse reads OPML data from an io.Reader. Outlines nested inside a folder
// outline inherit the folder name as their category; deeper nesting
// flattens to the nearest folder.
func Parse(r io.Reader) (*Document, error) {
	var raw opmlXML
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode OPML: %w", err)
	}

	doc := &Document{Title: raw.Head.Title}
	for _, outline := range raw.Body.Outlines {
		doc.Feeds = append(doc.Feeds, collectFeeds(outline, "")...)
	}
	return doc, nil
}

// ParseFile reads OPML data from a file.
func ParseFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open OPML file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func collectFeeds(outline outlineXML, category string) []Feed {
	var feeds []Feed

	if outline.XMLURL != "" {
		title := outline.Title
		if title == "" {
			title = outline.Text
		}
		feeds = append(feeds, Feed{
			URL:      outline.XMLURL,
			Title:    title,
			Category: category,
		})
	}

	childCategory := category
	if outline.XMLURL == "" && outline.Text != "" {
		childCategory = outline.Text
	}
	for _, child := range outline.Children {
		feeds = append(feeds, collectFeeds(child, childCategory)...)
	}

	return feeds
}

// Write writes the document to an io.Writer as OPML 2.0, grouping feeds
// that share a category under a folder outline.
func (d *Document) Write(w io.Writer) error {
	raw := opmlXML{
		Version: "2.0",
		Head:    headXML{Title: d.Title},
	}

	folders := make(map[string]int) // category -> index into Outlines
	for _, feed := range d.Feeds {
		node := outlineXML{
			Text:   feed.Title,
			Title:  feed.Title,
			Type:   "rss",
			XMLURL: feed.URL,
		}

		if feed.Category == "" {
			raw.Body.Outlines = append(raw.Body.Outlines, node)
			continue
		}

		idx, ok := folders[feed.Category]
		if !ok {
			raw.Body.Outlines = append(raw.Body.Outlines, outlineXML{Text: feed.Category})
			idx = len(raw.Body.Outlines) - 1
			folders[feed.Category] = idx
		}
		raw.Body.Outlines[idx].Children = append(raw.Body.Outlines[idx].Children, node)
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("write XML header: %w", err)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(raw); err != nil {
		return fmt.Errorf("encode OPML: %w", err)
	}
	return nil
}

// WriteFile writes the document to a file, creating parent directories.
func (d *Document) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	return d.Write(file)
}
