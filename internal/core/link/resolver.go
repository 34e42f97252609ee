// Package link classifies and decodes reference-manager deep links.
// This is part of the Functional Core - no I/O, only pure functions.
package link

import (
	"strconv"
	"strings"
)

// DefaultScheme is the reference-manager scheme deep links use.
const DefaultScheme = "zotero"

// Kind is the classification of a deep link.
type Kind string

// Link kinds, in classification priority order.
const (
	KindAnnotation Kind = "annotation"
	KindPDF        Kind = "pdf"
	KindItem       Kind = "item"
)

// Link is the decoded form of one deep link.
// Page and AnnotationID are nil when the link does not carry them.
type Link struct {
	Kind         Kind
	Key          string
	Page         *int
	AnnotationID *string
}

// Resolve classifies raw and extracts its fields. It never fails: anything
// it cannot find is left empty.
//
// Classification (first match wins):
//   - an "annotation=" parameter makes it KindAnnotation
//   - an "open-pdf" path segment makes it KindPDF
//   - anything else is KindItem
func Resolve(raw string) Link {
	path, query := splitQuery(raw)

	l := Link{Kind: KindItem}
	switch {
	case strings.Contains(raw, "annotation="):
		l.Kind = KindAnnotation
	case hasSegment(path, "open-pdf"):
		l.Kind = KindPDF
	}

	l.Key = itemKey(path)
	if v, ok := param(query, "page"); ok {
		if n, ok := leadingInt(v); ok {
			l.Page = &n
		}
	}
	if v, ok := param(query, "annotation"); ok {
		if id := leadingAlnum(v); id != "" {
			l.AnnotationID = &id
		}
	}
	return l
}

// splitQuery separates the part before "?" from the parameters after it.
// Any "#fragment" is dropped.
func splitQuery(raw string) (string, string) {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	path, query, _ := strings.Cut(raw, "?")
	return path, query
}

// hasSegment reports whether name appears as a whole "/"-separated segment,
// including the authority segment right after "scheme://".
func hasSegment(path, name string) bool {
	if _, rest, ok := strings.Cut(path, "://"); ok {
		path = rest
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == name {
			return true
		}
	}
	return false
}

// itemKey returns the path segment following "items/".
func itemKey(path string) string {
	_, rest, ok := strings.Cut(path, "items/")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, "/&"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// param finds name=value among "&"-separated query parameters.
func param(query, name string) (string, bool) {
	for _, kv := range strings.Split(query, "&") {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k == name {
			return v, true
		}
	}
	return "", false
}

func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func leadingAlnum(s string) string {
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			end++
			continue
		}
		break
	}
	return s[:end]
}
