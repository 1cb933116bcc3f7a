package indexer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunker_Empty(t *testing.T) {
	c := NewChunker()

	if got := c.Chunk(""); got != nil {
		t.Errorf("Chunk(\"\") = %v, want nil", got)
	}
	if got := c.Chunk("   \n\n  "); got != nil {
		t.Errorf("Chunk(whitespace) = %v, want nil", got)
	}
}

func TestChunker_PlainTextParagraphs(t *testing.T) {
	c := NewChunker()

	text := "The elder was asked about humility, and he answered with a parable that took some time to tell in full.\n\n" +
		"Another brother came to him on the following day and asked about obedience, and again the elder answered at length."

	chunks := c.Chunk(text)
	if len(chunks) == 0 {
		t.Fatal("Chunk() returned no chunks")
	}
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d has Index %d", i, chunk.Index)
		}
		if chunk.Section != "" {
			t.Errorf("plain text should have no section, got %q", chunk.Section)
		}
		if utf8.RuneCountInString(chunk.Text) > maxChunkRunes {
			t.Errorf("chunk %d exceeds max size", i)
		}
	}
	// Both short paragraphs fit into one chunk.
	if len(chunks) != 1 {
		t.Errorf("got %d chunks, want 1 (short paragraphs packed together)", len(chunks))
	}
	if !strings.Contains(chunks[0].Text, "humility") || !strings.Contains(chunks[0].Text, "obedience") {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
}

func TestChunker_HeadingsBecomeSections(t *testing.T) {
	c := NewChunker()

	text := "# On Humility\n\n" +
		strings.Repeat("The elder spoke of humility at great length. ", 10) + "\n\n" +
		"# On Silence\n\n" +
		strings.Repeat("Concerning silence he said many things as well. ", 10)

	chunks := c.Chunk(text)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 (one per section): %+v", len(chunks), chunks)
	}
	if chunks[0].Section != "On Humility" || chunks[1].Section != "On Silence" {
		t.Errorf("sections = %q, %q", chunks[0].Section, chunks[1].Section)
	}
	if strings.Contains(chunks[0].Text, "silence") {
		t.Error("section content leaked across the heading boundary")
	}
}

func TestChunker_SplitsOversizedParagraph(t *testing.T) {
	c := NewChunker()

	sentence := "The brother listened to everything the elder had to say about the matter. "
	text := strings.Repeat(sentence, 60) // far beyond maxChunkRunes

	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want an oversized paragraph split", len(chunks))
	}
	for i, chunk := range chunks {
		if utf8.RuneCountInString(chunk.Text) > maxChunkRunes {
			t.Errorf("chunk %d exceeds max size", i)
		}
		// Sentence-boundary splits keep whole sentences.
		if !strings.HasSuffix(chunk.Text, ".") {
			t.Errorf("chunk %d does not end at a sentence boundary: %q", i, chunk.Text[len(chunk.Text)-20:])
		}
	}
}

func TestChunker_DewrappedTextSurvivesRoundTrip(t *testing.T) {
	c := NewChunker()

	text := "110. On humility, the elder said that the monk who knows his own weakness stands higher than the one who sees angels."

	chunks := c.Chunk(text)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("Chunk() altered the text:\n got %q\nwant %q", chunks[0].Text, text)
	}
}
