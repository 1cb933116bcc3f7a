package textclean

import "testing"

func TestDewrap(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "hard wraps joined",
			text: "The elder said that the monk\nwho keeps his cell\nwill be taught everything.",
			want: "The elder said that the monk who keeps his cell will be taught everything.",
		},
		{
			name: "paragraph breaks preserved",
			text: "First paragraph\nwrapped once.\n\nSecond paragraph\nwrapped too.",
			want: "First paragraph wrapped once.\n\nSecond paragraph wrapped too.",
		},
		{
			name: "space runs collapsed",
			text: "too   many\tspaces here",
			want: "too many spaces here",
		},
		{
			name: "crlf endings normalized",
			text: "one\r\ntwo\r\n\r\nthree",
			want: "one two\n\nthree",
		},
		{
			name: "triple newlines collapse to paragraph break",
			text: "one\n\n\ntwo",
			want: "one\n\ntwo",
		},
		{
			name: "result trimmed",
			text: "\n  wrapped\nline  \n",
			want: "wrapped line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dewrap(tt.text); got != tt.want {
				t.Errorf("Dewrap(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// Dewrap after StripHeadingLines keeps headings out of the joined prose;
// reversing the order would fuse them in irrecoverably.
func TestDewrap_OrderingWithHeadings(t *testing.T) {
	text := "ON HUMILITY\nThe elder said that humility\nis the crown of the monk."

	got := Dewrap(StripHeadingLines(text))
	want := "The elder said that humility is the crown of the monk."
	if got != want {
		t.Errorf("StripHeadingLines then Dewrap = %q, want %q", got, want)
	}

	fused := Dewrap(text)
	if fused == want {
		t.Error("fixture should demonstrate that reversing the order fuses the heading into prose")
	}
}
