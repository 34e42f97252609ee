// Package extract turns free-form note text into annotation records.
// This is part of the Functional Core - no I/O, only pure functions.
//
// Two grammars are tried. The primary grammar reads
//
//	"quote" ([label](scheme://...)) ([pdf](scheme://open-pdf/...)) note
//
// with the pdf link optional. Only when it finds nothing, the fallback grammar
// takes every long quoted span and looks for citation and pdf links inside a
// bounded window after it.
package extract

import (
	"strings"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/core/link"
)

// Fallback grammar defaults.
const (
	DefaultWindow         = 300
	DefaultMinQuoteLength = 20
)

// Options tunes the extractor. Zero values fall back to the defaults.
type Options struct {
	// Scheme is the deep-link scheme, without "://".
	Scheme string
	// Window is how many runes after a fallback quote are searched for links.
	Window int
	// MinQuoteLength is the minimum rune length of a fallback quote.
	MinQuoteLength int
}

// DefaultOptions returns the options used by Extract.
func DefaultOptions() Options {
	return Options{
		Scheme:         link.DefaultScheme,
		Window:         DefaultWindow,
		MinQuoteLength: DefaultMinQuoteLength,
	}
}

// PaperContext describes the paper a note belongs to. It is attached to every
// produced annotation and never affects parsing.
type PaperContext struct {
	ID          string
	Title       string
	ExternalKey string
	Authors     string
	Year        string
}

// Extractor scans note text for annotations.
type Extractor struct {
	opts Options
}

// New creates an Extractor, filling unset options with defaults.
func New(opts Options) *Extractor {
	def := DefaultOptions()
	if opts.Scheme == "" {
		opts.Scheme = def.Scheme
	}
	if opts.Window <= 0 {
		opts.Window = def.Window
	}
	if opts.MinQuoteLength <= 0 {
		opts.MinQuoteLength = def.MinQuoteLength
	}
	return &Extractor{opts: opts}
}

// Options returns the effective options.
func (e *Extractor) Options() Options {
	return e.opts
}

// Extract returns the annotations found in text, in source order, using the
// default options.
func Extract(text string, paper *PaperContext) []board.Annotation {
	return New(Options{}).Extract(text, paper)
}

// Extract returns the annotations found in text, in source order.
// It never fails; unparseable text yields no annotations.
func (e *Extractor) Extract(text string, paper *PaperContext) []board.Annotation {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if out := e.scanPrimary(text, paper); len(out) > 0 {
		return out
	}
	return e.scanFallback(text, paper)
}

// HasAnnotations reports whether text holds at least one long quote and a
// deep link of the configured scheme.
func (e *Extractor) HasAnnotations(text string) bool {
	if !strings.Contains(strings.ToLower(text), strings.ToLower(e.opts.Scheme)+"://") {
		return false
	}
	_, _, ok := e.nextLongQuote(text, 0)
	return ok
}

// CountAnnotations returns the number of long quoted spans in text. It is a
// quick estimate that does not look at links.
func (e *Extractor) CountAnnotations(text string) int {
	n := 0
	for pos := 0; ; {
		_, closeAt, ok := e.nextLongQuote(text, pos)
		if !ok {
			return n
		}
		n++
		pos = closeAt + 1
	}
}

// match is one accepted candidate before it becomes an annotation.
type match struct {
	quote    string
	citation *link.LabeledLink
	pdf      *link.LabeledLink
	note     string
	fallback bool
}

func (e *Extractor) build(m match, paper *PaperContext) (board.Annotation, bool) {
	quote := strings.TrimSpace(m.quote)
	if quote == "" {
		return board.Annotation{}, false
	}

	a := board.Annotation{
		Quote:  quote,
		MyNote: strings.TrimSpace(m.note),
	}

	if m.citation != nil {
		a.Source.Text = strings.TrimSpace(m.citation.Label)
		a.Source.ExternalURL = board.String(m.citation.URL)
		if m.citation.Link.Key != "" {
			a.Source.ExternalKey = board.String(m.citation.Link.Key)
		}
	} else if m.fallback {
		a.Source.Text = paperAttribution(paper)
	}
	if m.fallback && a.Source.ExternalKey == nil && paper != nil && paper.ExternalKey != "" {
		a.Source.ExternalKey = board.String(paper.ExternalKey)
	}

	if m.pdf != nil {
		a.PDF = &board.PDFRef{
			URL:          m.pdf.URL,
			Page:         m.pdf.Link.Page,
			AnnotationID: m.pdf.Link.AnnotationID,
		}
	}

	if paper != nil {
		if paper.ID != "" {
			a.PaperID = board.String(paper.ID)
		}
		if paper.Title != "" {
			a.PaperTitle = board.String(paper.Title)
		}
	}
	return a, true
}

// paperAttribution builds "<first author>, <year>" for quotes without a
// citation link.
func paperAttribution(paper *PaperContext) string {
	author, year := "Unknown", "?"
	if paper != nil {
		if first, _, _ := strings.Cut(paper.Authors, ","); strings.TrimSpace(first) != "" {
			author = strings.TrimSpace(first)
		}
		if strings.TrimSpace(paper.Year) != "" {
			year = strings.TrimSpace(paper.Year)
		}
	}
	return author + ", " + year
}
