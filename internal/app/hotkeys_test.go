package app

import (
	"strings"
	"testing"
)

func TestRenderHotkeysFiltersByContextAndPriority(t *testing.T) {
	out := renderHotkeys(DefaultHotkeys(), activeHotkeyContexts(uiModeConfirm))
	if out != "y/enter confirm · n/esc cancel · ctrl+c quit" {
		t.Fatalf("unexpected confirm hotkeys %q", out)
	}

	list := renderHotkeys(DefaultHotkeys(), activeHotkeyContexts(uiModeList))
	if !strings.HasPrefix(list, "tab/1-4 resource · j/k move") {
		t.Fatalf("expected list hotkeys in priority order, got %q", list)
	}
	if strings.Contains(list, "apply") {
		t.Fatalf("filter hotkeys leaked into list help: %q", list)
	}
}
