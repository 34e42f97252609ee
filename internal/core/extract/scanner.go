package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/core/link"
)

// scanPrimary walks the text left to right. Every '"' is a candidate opening
// quote; when a candidate does not match, its closing quote becomes the next
// candidate. Matches never overlap.
func (e *Extractor) scanPrimary(text string, paper *PaperContext) []board.Annotation {
	var out []board.Annotation
	for pos := 0; ; {
		openAt := indexFrom(text, pos, '"')
		if openAt < 0 {
			break
		}
		closeAt := indexFrom(text, openAt+1, '"')
		if closeAt < 0 {
			break
		}

		m, end, ok := e.matchPrimary(text, openAt, closeAt)
		if !ok {
			pos = closeAt
			continue
		}
		if a, ok := e.build(m, paper); ok {
			out = append(out, a)
		}
		pos = end
	}
	return out
}

// matchPrimary tries the primary grammar for the quote at text[openAt:closeAt+1].
// end is where the next scan starts: the quote that terminated the note, or
// the end of the text.
func (e *Extractor) matchPrimary(text string, openAt, closeAt int) (match, int, bool) {
	if closeAt == openAt+1 {
		return match{}, 0, false
	}
	m := match{quote: text[openAt+1 : closeAt]}

	i := skipSpace(text, closeAt+1)
	citation, citeEnd, ok := e.wrappedLink(text, i)
	if !ok || citation.Label == "" {
		return match{}, 0, false
	}
	m.citation = &citation

	i = skipSpace(text, citeEnd)
	if pdf, pdfEnd, ok := e.wrappedLink(text, i); ok && pdf.Label == "pdf" {
		m.pdf = &pdf
		i = skipSpace(text, pdfEnd)
	}

	noteEnd := indexFrom(text, i, '"')
	if noteEnd < 0 {
		noteEnd = len(text)
	}
	m.note = text[i:noteEnd]
	return m, noteEnd, true
}

// wrappedLink parses "([label](scheme://...))" at text[i].
func (e *Extractor) wrappedLink(text string, i int) (link.LabeledLink, int, bool) {
	if i >= len(text) || text[i] != '(' {
		return link.LabeledLink{}, 0, false
	}
	l, ok := link.ParseLabeledAt(text, i+1, e.opts.Scheme)
	if !ok || l.End >= len(text) || text[l.End] != ')' {
		return link.LabeledLink{}, 0, false
	}
	return l, l.End + 1, true
}

// scanFallback takes every quote of at least MinQuoteLength runes and looks
// for a citation link and a pdf link, independently, within Window runes
// after the closing quote.
func (e *Extractor) scanFallback(text string, paper *PaperContext) []board.Annotation {
	var out []board.Annotation
	for pos := 0; ; {
		openAt, closeAt, ok := e.nextLongQuote(text, pos)
		if !ok {
			break
		}
		pos = closeAt + 1

		m := match{quote: text[openAt+1 : closeAt], fallback: true}
		window := text[closeAt+1 : advanceRunes(text, closeAt+1, e.opts.Window)]

		m.citation = e.findLink(window, func(l link.LabeledLink) bool {
			return l.Label != "" && hasPathPrefix(l.URL, e.opts.Scheme+"://select", false)
		})
		m.pdf = e.findLink(window, func(l link.LabeledLink) bool {
			return strings.EqualFold(l.Label, "pdf") && hasPathPrefix(l.URL, e.opts.Scheme+"://open-pdf", true)
		})

		if m.citation != nil || m.pdf != nil {
			last := 0
			if m.citation != nil {
				last = m.citation.End
			}
			if m.pdf != nil && m.pdf.End > last {
				last = m.pdf.End
			}
			m.note = trailingNote(window[last:])
		}

		if a, ok := e.build(m, paper); ok {
			out = append(out, a)
		}
	}
	return out
}

// nextLongQuote finds the next quoted span of at least MinQuoteLength runes
// starting the search at pos. A span that is too short hands its closing quote
// on as the next opening candidate.
func (e *Extractor) nextLongQuote(text string, pos int) (int, int, bool) {
	for {
		openAt := indexFrom(text, pos, '"')
		if openAt < 0 {
			return 0, 0, false
		}
		closeAt := indexFrom(text, openAt+1, '"')
		if closeAt < 0 {
			return 0, 0, false
		}
		if utf8.RuneCountInString(text[openAt+1:closeAt]) >= e.opts.MinQuoteLength {
			return openAt, closeAt, true
		}
		pos = closeAt
	}
}

// findLink returns the first labelled link in window accepted by keep.
func (e *Extractor) findLink(window string, keep func(link.LabeledLink) bool) *link.LabeledLink {
	for i := 0; i < len(window); i++ {
		if window[i] != '[' {
			continue
		}
		if l, ok := link.ParseLabeledAt(window, i, e.opts.Scheme); ok && keep(l) {
			return &l
		}
	}
	return nil
}

// trailingNote is the commentary after the last link in a fallback window:
// the link's closing parenthesis and whitespace are skipped and the note
// stops at the next quote. A remainder that opens with another link or
// parenthetical carries no note.
func trailingNote(rest string) string {
	rest = strings.TrimLeftFunc(rest, func(r rune) bool {
		return r == ')' || unicode.IsSpace(r)
	})
	if strings.HasPrefix(rest, "(") || strings.HasPrefix(rest, "[") {
		return ""
	}
	if i := strings.IndexByte(rest, '"'); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}

// hasPathPrefix reports whether url starts with prefix and has at least one
// more character after it.
func hasPathPrefix(url, prefix string, fold bool) bool {
	if len(url) <= len(prefix) {
		return false
	}
	if fold {
		return link.HasPrefixFold(url, prefix)
	}
	return strings.HasPrefix(url, prefix)
}

func indexFrom(s string, from int, c byte) int {
	if from >= len(s) {
		return -1
	}
	i := strings.IndexByte(s[from:], c)
	if i < 0 {
		return -1
	}
	return from + i
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// advanceRunes returns the byte offset n runes after from, capped at len(s).
func advanceRunes(s string, from, n int) int {
	i := from
	for count := 0; count < n && i < len(s); count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
