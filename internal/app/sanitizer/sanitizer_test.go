package sanitizer

import "testing"

func TestCellStripsEscapesAndControls(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Steel mug", want: "Steel mug"},
		{name: "csi color", input: "\x1b[31mRed\x1b[0m mug", want: "Red mug"},
		{name: "osc title", input: "\x1b]0;pwned\x07Mug", want: "Mug"},
		{name: "charset", input: "\x1b(0Mug", want: "Mug"},
		{name: "newlines", input: "Line one\nLine two", want: "Line one Line two"},
		{name: "tabs and bell", input: "a\tb\x07c", want: "a bc"},
		{name: "c1 controls", input: "x\u009by", want: "xy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cell(tt.input); got != tt.want {
				t.Fatalf("Cell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextKeepsNewlines(t *testing.T) {
	if got := Text("## Mug\r\n\n- steel\x1b[2J"); got != "## Mug\n\n- steel" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestMaxWidthTruncatesByCells(t *testing.T) {
	s := New(Config{MaxWidth: 5})
	if got := s.Sanitize("日本語テキスト"); got != "日本…" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := s.Sanitize(""); got != "" {
		t.Fatalf("expected empty output")
	}
}
