package textclean

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractUnit_NumberedSayings(t *testing.T) {
	text := "110. On humility, the elder said that the monk who knows his own weakness stands higher than the one who sees angels.\n\n111. Another saying of the same elder, on the keeping of silence in the cell at all times."

	unit := ExtractUnit(text, []string{"humility"})

	want := "110. On humility, the elder said that the monk who knows his own weakness stands higher than the one who sees angels."
	if unit.Full != want {
		t.Errorf("Full = %q, want %q", unit.Full, want)
	}
	if strings.Contains(unit.Full, "111.") {
		t.Error("unit must not spill into the next numbered saying")
	}
	if unit.Preview != unit.Full {
		t.Errorf("short unit preview should equal full, got %q", unit.Preview)
	}
}

func TestExtractUnit_NumberedBoundariesExact(t *testing.T) {
	// Anchor sits between two markers; the unit must span exactly from the
	// marker at-or-before the anchor to the next one, never falling through
	// to the paragraph or window tiers.
	first := "1. The first saying speaks about obedience and the cutting off of the will in all things."
	second := "2. The second saying speaks about patience under insult and the bearing of reproach gladly."
	third := "3. The third saying speaks about poverty of spirit and owning nothing in the cell."
	text := first + "\n" + second + "\n" + third

	unit := ExtractUnit(text, []string{"patience"})

	if unit.Full != second {
		t.Errorf("Full = %q, want exactly the second saying", unit.Full)
	}
}

func TestExtractUnit_ParagraphTier(t *testing.T) {
	para1 := "The brothers came to the elder at Scetis and asked him for a word about the guarding of thoughts."
	para2 := "He answered them that the cell teaches everything, if only the monk remains in it with patience."
	text := para1 + "\n\n" + para2

	unit := ExtractUnit(text, []string{"cell", "teaches"})

	if unit.Full != para2 {
		t.Errorf("Full = %q, want second paragraph", unit.Full)
	}
}

func TestExtractUnit_WindowFallback(t *testing.T) {
	// The paragraph containing the anchor is too short to stand alone, so
	// the extractor falls back to an ellipsis-marked window.
	text := strings.Repeat("before ", 60) + "\n\nsee humility here\n\n" + strings.Repeat("after ", 60)

	unit := ExtractUnit(text, []string{"humility"})

	if !strings.HasPrefix(unit.Full, Ellipsis) {
		t.Errorf("window clipped at start must carry ellipsis prefix, got %q", unit.Full[:20])
	}
	if !strings.HasSuffix(unit.Full, Ellipsis) {
		t.Error("window clipped at end must carry ellipsis suffix")
	}
	if !strings.Contains(unit.Full, "humility") {
		t.Error("window must contain the anchor term")
	}
}

func TestExtractUnit_NoTermAnchorsAtStart(t *testing.T) {
	text := "A short line without the term.\n\nAnother paragraph follows here with enough length to stand alone as a unit."

	unit := ExtractUnit(text, []string{"zzz-not-present"})

	if !strings.HasPrefix(unit.Full, "A short line") {
		t.Errorf("unmatched query should anchor at offset 0, got %q", unit.Full)
	}
}

func TestTruncatePreview(t *testing.T) {
	t.Run("short text unchanged", func(t *testing.T) {
		if got := TruncatePreview("short"); got != "short" {
			t.Errorf("TruncatePreview() = %q", got)
		}
	})

	t.Run("long text truncated with ellipsis", func(t *testing.T) {
		full := strings.Repeat("a", 2000)
		got := TruncatePreview(full)

		if !strings.HasSuffix(got, Ellipsis) {
			t.Error("truncated preview must end with ellipsis")
		}
		if utf8.RuneCountInString(got) > MaxPreviewRunes+1 {
			t.Errorf("preview rune count = %d, want <= %d", utf8.RuneCountInString(got), MaxPreviewRunes+1)
		}
		prefix := strings.TrimSuffix(got, Ellipsis)
		if !strings.HasPrefix(full, prefix) {
			t.Error("preview must be a prefix of full text")
		}
	})
}

func TestExtractUnit_PreviewRoundTrip(t *testing.T) {
	long := "1. " + strings.Repeat("the elder said a word and the brothers were helped ", 40) + "\n2. " + strings.Repeat("another saying entirely about a different matter ", 10)

	unit := ExtractUnit(long, []string{"elder"})

	if unit.Preview == unit.Full {
		t.Fatal("fixture should force truncation")
	}
	prefix := strings.TrimSuffix(unit.Preview, Ellipsis)
	if !strings.HasPrefix(unit.Full, prefix) {
		t.Error("preview must be full, or a strict prefix of full plus ellipsis")
	}
	if utf8.RuneCountInString(unit.Preview) > MaxPreviewRunes+1 {
		t.Errorf("preview too long: %d runes", utf8.RuneCountInString(unit.Preview))
	}
}
