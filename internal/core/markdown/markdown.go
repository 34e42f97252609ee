// Package markdown renders a board as a flat Markdown document.
// This is part of the Functional Core - output depends only on the board.
package markdown

import (
	"strconv"
	"strings"

	"github.com/example/annoboard/internal/core/board"
)

// DefaultCitationLabel is the link text used for citation links.
const DefaultCitationLabel = "Zotero"

// Options controls rendering.
type Options struct {
	// CitationLabel is the text of the link to source.ExternalURL.
	CitationLabel string
}

// ToMarkdown renders b. Columns without cards are skipped; identical boards
// always render to identical bytes.
func ToMarkdown(b *board.Board, opts Options) string {
	if opts.CitationLabel == "" {
		opts.CitationLabel = DefaultCitationLabel
	}

	var sb strings.Builder
	sb.WriteString("# " + b.Title + "\n\n")

	for _, col := range b.Columns {
		if len(col.CardIDs) == 0 {
			continue
		}
		sb.WriteString("## " + col.Title + "\n\n")
		for _, id := range col.CardIDs {
			card, ok := b.Cards[id]
			if !ok {
				continue
			}
			writeCard(&sb, card, opts)
		}
	}
	return sb.String()
}

func writeCard(sb *strings.Builder, card *board.Card, opts Options) {
	for _, line := range strings.Split(`"`+card.Quote+`"`, "\n") {
		sb.WriteString(strings.TrimRight("> "+line, " ") + "\n")
	}

	url := board.Deref(card.Source.ExternalURL)
	if card.Source.Text != "" || url != "" {
		sb.WriteString("> —")
		if card.Source.Text != "" {
			sb.WriteString(" " + card.Source.Text)
		}
		if url != "" {
			sb.WriteString(" [" + opts.CitationLabel + "](" + url + ")")
		}
		sb.WriteString("\n")
	}

	if card.PDF != nil && card.PDF.URL != "" {
		label := "PDF"
		if card.PDF.Page != nil {
			label += " p." + strconv.Itoa(*card.PDF.Page)
		}
		sb.WriteString("> [" + label + "](" + card.PDF.URL + ")\n")
	}
	sb.WriteString("\n")

	if card.MyNote != "" {
		sb.WriteString(card.MyNote + "\n\n")
	}
	sb.WriteString("---\n\n")
}
