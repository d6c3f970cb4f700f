package app

import (
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{in: "Oak Bowl", width: 20, want: "Oak Bowl"},
		{in: "Oak Bowl", width: 5, want: "Oak …"},
		{in: "Oak Bowl", width: 1, want: "…"},
		{in: "日本語テキスト", width: 5, want: "日本…"},
	}
	for _, tt := range tests {
		if got := truncateToWidth(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncateToWidth(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRenderStatusLineKeepsStatusVisible(t *testing.T) {
	line := renderStatusLine(30, "j/k move · enter open · / filter · x clear", "20 of 65")
	if w := xansi.StringWidth(line); w != 30 {
		t.Fatalf("expected width 30, got %d: %q", w, line)
	}
	if got := line[len(line)-len("20 of 65"):]; got != "20 of 65" {
		t.Fatalf("expected status at the right edge, got %q", line)
	}
}
