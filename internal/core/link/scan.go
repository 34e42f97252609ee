package link

import "strings"

// LabeledLink is a markdown-style "[label](url)" deep link found in text.
type LabeledLink struct {
	Label string
	URL   string
	Start int
	End   int
	Link  Link
}

// ParseLabeledAt parses "[label](scheme://...)" starting exactly at text[i].
// The label may not contain "]" and the URL runs up to the first ")"; the URL
// must have at least one character after "scheme://" (scheme compared without
// case). End is the offset just past the closing ")".
func ParseLabeledAt(text string, i int, scheme string) (LabeledLink, bool) {
	if i < 0 || i >= len(text) || text[i] != '[' {
		return LabeledLink{}, false
	}
	closeLabel := strings.IndexByte(text[i+1:], ']')
	if closeLabel < 0 {
		return LabeledLink{}, false
	}
	labelEnd := i + 1 + closeLabel
	if labelEnd+1 >= len(text) || text[labelEnd+1] != '(' {
		return LabeledLink{}, false
	}

	urlStart := labelEnd + 2
	prefix := scheme + "://"
	if !HasPrefixFold(text[urlStart:], prefix) {
		return LabeledLink{}, false
	}
	closeURL := strings.IndexByte(text[urlStart+len(prefix):], ')')
	if closeURL < 1 {
		return LabeledLink{}, false
	}
	urlEnd := urlStart + len(prefix) + closeURL

	url := text[urlStart:urlEnd]
	return LabeledLink{
		Label: text[i+1 : labelEnd],
		URL:   url,
		Start: i,
		End:   urlEnd + 1,
		Link:  Resolve(url),
	}, true
}

// FindAll returns every "[label](scheme://...)" link in text, in order.
func FindAll(text, scheme string) []LabeledLink {
	if scheme == "" {
		scheme = DefaultScheme
	}
	var links []LabeledLink
	for i := 0; i < len(text); {
		open := strings.IndexByte(text[i:], '[')
		if open < 0 {
			break
		}
		at := i + open
		if l, ok := ParseLabeledAt(text, at, scheme); ok {
			links = append(links, l)
			i = l.End
			continue
		}
		i = at + 1
	}
	return links
}

// HasPrefixFold is strings.HasPrefix with ASCII case folding.
func HasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
