package domain

import "errors"

// Entry is a stored pair of short ID and destination URL.
// The JSON field names are part of the public API contract: exactly "id" and "url".
type Entry struct {
	ID  string `json:"id"`  // Short opaque identifier, immutable after creation
	URL string `json:"url"` // Canonicalized destination URL
}

// Domain errors
var (
	ErrNotFound    = errors.New("entry not found")
	ErrDuplicateID = errors.New("entry with this id already exists")
)

// CanonicalPrefix is prepended to every user-supplied URL before it is stored.
const CanonicalPrefix = "http://"

// Canonicalize returns the stored form of a user-supplied URL.
// The prefix is added unconditionally, so "https://x.com" becomes "http://https://x.com".
// The duplicate check compares against this same string, which keeps repeated
// submissions of the same input collapsed into one entry.
func Canonicalize(rawURL string) string {
	return CanonicalPrefix + rawURL
}

// NewEntry is a constructor function for Entry
func NewEntry(id, url string) *Entry {
	return &Entry{ID: id, URL: url}
}

// Clone returns a copy so callers can't mutate what the store holds
func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}

// SeedEntries returns the demo entries every fresh store starts with.
func SeedEntries() []*Entry {
	return []*Entry{
		NewEntry("ads45s", "https://ballerina.io"),
		NewEntry("sdf45s", "https://ballerina.io/learn/api-docs/ballerina/http.html"),
		NewEntry("xyz123", "https://example.com"),
	}
}
