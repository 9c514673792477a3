// Package docx packs rendered agreement text into a word-processor document.
package docx

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	godocx "github.com/fumiama/go-docx"
)

const (
	// ContentType is the MIME type of a packed document
	ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// PageBreakMarker separates pages in rendered text
	PageBreakMarker = "\f"

	FontFamily = "Calibri"
	// FontSize is in half-points (11pt)
	FontSize = "22"
)

var ErrPackaging = errors.New("document packaging failed")

// BlockKind is the kind of a layout block
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockPageBreak
)

// Block is one element of the document body
type Block struct {
	Kind BlockKind
	Text string
}

// Layout splits text into paragraphs and page breaks. Every line of every
// page becomes one trimmed paragraph (possibly empty); a page break sits
// between consecutive pages, never after the last one.
func Layout(text string) []Block {
	pages := strings.Split(text, PageBreakMarker)
	blocks := make([]Block, 0, strings.Count(text, "\n")+len(pages))
	for i, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: strings.TrimSpace(line)})
		}
		if i < len(pages)-1 {
			blocks = append(blocks, Block{Kind: BlockPageBreak})
		}
	}
	return blocks
}

// Pack builds the document for text fully in memory. Nothing is returned
// unless the whole document was written.
func Pack(text string) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: %v", ErrPackaging, r)
		}
	}()

	doc := godocx.New().WithDefaultTheme()
	for _, b := range Layout(text) {
		p := doc.AddParagraph()
		switch b.Kind {
		case BlockPageBreak:
			p.AddPageBreaks()
		default:
			if b.Text != "" {
				p.AddText(b.Text).Font(FontFamily, FontFamily, FontFamily, "").Size(FontSize)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackaging, err)
	}
	return buf.Bytes(), nil
}
