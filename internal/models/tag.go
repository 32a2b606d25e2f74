// ABOUTME: Tag model for labelling articles
// ABOUTME: Tags are globally unique by name and many-to-many with articles

package models

// Tag is a named label attached to articles.
type Tag struct {
	ID   int64
	Name string
}
