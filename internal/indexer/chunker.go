package indexer

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	// minChunkRunes merges tiny fragments into their neighbor.
	minChunkRunes = 80
	// maxChunkRunes keeps chunks within the embedding model's window
	// while leaving whole sayings and paragraphs intact where possible.
	maxChunkRunes = 1200
)

// Chunk is an indexable slice of a book.
type Chunk struct {
	Index   int
	Section string
	Text    string
}

// Chunker splits book text into indexable chunks. Plain text parses as
// markdown paragraphs, so one parser covers both plain and marked-up
// books; headings become section labels when present.
type Chunker struct {
	parser goldmark.Markdown
}

// NewChunker creates a new Chunker.
func NewChunker() *Chunker {
	return &Chunker{parser: goldmark.New()}
}

// block is a contiguous piece of source text under one section heading.
type block struct {
	section string
	text    string
}

// Chunk splits the book text into chunks.
func (c *Chunker) Chunk(content string) []Chunk {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	blocks := c.extractBlocks([]byte(content))
	chunks := packBlocks(blocks)

	for i := range chunks {
		chunks[i].Index = i
	}
	return chunks
}

// extractBlocks walks the AST and emits one block per paragraph-level
// node, tagged with the nearest enclosing heading.
func (c *Chunker) extractBlocks(content []byte) []block {
	doc := c.parser.Parser().Parse(text.NewReader(content))

	var blocks []block
	section := ""

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if heading, ok := n.(*ast.Heading); ok {
			section = nodeText(heading, content)
			return ast.WalkSkipChildren, nil
		}

		switch n.(type) {
		case *ast.Paragraph, *ast.Blockquote, *ast.List, *ast.CodeBlock:
			// Raw source spans keep list markers and saying numbers
			// that the AST would otherwise swallow.
			if t := rawSpan(n, content); t != "" {
				blocks = append(blocks, block{section: section, text: t})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	if len(blocks) == 0 {
		blocks = append(blocks, block{text: string(content)})
	}
	return blocks
}

// packBlocks groups consecutive blocks of one section into chunks of
// bounded size. A block that alone exceeds the bound is split at
// sentence boundaries.
func packBlocks(blocks []block) []Chunk {
	var chunks []Chunk
	var cur strings.Builder
	curSection := ""
	curRunes := 0

	flush := func() {
		if curRunes == 0 {
			return
		}
		chunks = append(chunks, Chunk{Section: curSection, Text: cur.String()})
		cur.Reset()
		curRunes = 0
	}

	for _, b := range blocks {
		runes := utf8.RuneCountInString(b.text)

		if curRunes > 0 && (b.section != curSection || curRunes+runes+2 > maxChunkRunes) {
			// Keep a fragment attached to its section rather than
			// emitting it alone.
			if curRunes < minChunkRunes && b.section == curSection && runes <= maxChunkRunes {
				// fall through and accept the slightly oversized chunk
			} else {
				flush()
			}
		}

		if curRunes == 0 {
			curSection = b.section
		}
		if runes > maxChunkRunes && curRunes == 0 {
			for _, piece := range splitText(b.text, maxChunkRunes) {
				chunks = append(chunks, Chunk{Section: b.section, Text: piece})
			}
			continue
		}
		if curRunes > 0 {
			cur.WriteString("\n\n")
			curRunes += 2
		}
		cur.WriteString(b.text)
		curRunes += runes
	}
	flush()

	return chunks
}

// splitText splits text into pieces of at most maxRunes, preferring
// sentence boundaries and falling back to a hard split.
func splitText(s string, maxRunes int) []string {
	var pieces []string
	runes := []rune(s)

	for len(runes) > 0 {
		if len(runes) <= maxRunes {
			pieces = append(pieces, strings.TrimSpace(string(runes)))
			break
		}

		window := string(runes[:maxRunes])
		cut := maxRunes
		if i := strings.LastIndex(window, ". "); i > 0 {
			cut = utf8.RuneCountInString(window[:i]) + 2
		} else if i := strings.LastIndex(window, "\n"); i > 0 {
			cut = utf8.RuneCountInString(window[:i]) + 1
		}

		pieces = append(pieces, strings.TrimSpace(string(runes[:cut])))
		runes = runes[cut:]
	}

	out := pieces[:0]
	for _, p := range pieces {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// rawSpan returns the source text covered by a node, extended left to
// the start of its first line.
func rawSpan(n ast.Node, content []byte) string {
	start, stop := -1, -1

	note := func(s, e int) {
		if start == -1 || s < start {
			start = s
		}
		if e > stop {
			stop = e
		}
	}

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := node.(*ast.Text); ok {
			note(t.Segment.Start, t.Segment.Stop)
		}
		if node.Type() == ast.TypeBlock {
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				note(line.Start, line.Stop)
			}
		}
		return ast.WalkContinue, nil
	})

	if start == -1 {
		return ""
	}
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	return strings.TrimSpace(string(content[start:stop]))
}

// nodeText extracts the plain text of a node and its children.
func nodeText(n ast.Node, content []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}
