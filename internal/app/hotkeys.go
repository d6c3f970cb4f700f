package app

import (
	"sort"
	"strings"
)

type HotkeyContext int

const (
	HotkeyGlobal HotkeyContext = iota
	HotkeyList
	HotkeyFilter
	HotkeyDetail
	HotkeyForm
	HotkeyConfirm
)

type Hotkey struct {
	Key      string
	Label    string
	Context  HotkeyContext
	Priority int
}

func DefaultHotkeys() []Hotkey {
	return []Hotkey{
		{Key: "q", Label: "quit", Context: HotkeyList, Priority: 90},
		{Key: "tab/1-4", Label: "resource", Context: HotkeyList, Priority: 10},
		{Key: "j/k", Label: "move", Context: HotkeyList, Priority: 11},
		{Key: "enter", Label: "open", Context: HotkeyList, Priority: 12},
		{Key: "/", Label: "filter", Context: HotkeyList, Priority: 20},
		{Key: "x", Label: "clear filter", Context: HotkeyList, Priority: 21},
		{Key: "n", Label: "new", Context: HotkeyList, Priority: 30},
		{Key: "e", Label: "edit", Context: HotkeyList, Priority: 31},
		{Key: "d", Label: "delete", Context: HotkeyList, Priority: 32},
		{Key: "y", Label: "copy id", Context: HotkeyList, Priority: 33},
		{Key: "r", Label: "refresh", Context: HotkeyList, Priority: 40},
		{Key: "l", Label: "load more", Context: HotkeyList, Priority: 41},
		{Key: "tab", Label: "next field", Context: HotkeyFilter, Priority: 10},
		{Key: "space", Label: "cycle", Context: HotkeyFilter, Priority: 11},
		{Key: "enter", Label: "apply", Context: HotkeyFilter, Priority: 12},
		{Key: "ctrl+x", Label: "clear", Context: HotkeyFilter, Priority: 13},
		{Key: "esc", Label: "close", Context: HotkeyFilter, Priority: 14},
		{Key: "esc", Label: "back", Context: HotkeyDetail, Priority: 10},
		{Key: "e", Label: "edit", Context: HotkeyDetail, Priority: 11},
		{Key: "d", Label: "delete", Context: HotkeyDetail, Priority: 12},
		{Key: "y", Label: "copy id", Context: HotkeyDetail, Priority: 13},
		{Key: "tab", Label: "next field", Context: HotkeyForm, Priority: 10},
		{Key: "enter", Label: "save", Context: HotkeyForm, Priority: 11},
		{Key: "esc", Label: "cancel", Context: HotkeyForm, Priority: 12},
		{Key: "y/enter", Label: "confirm", Context: HotkeyConfirm, Priority: 10},
		{Key: "n/esc", Label: "cancel", Context: HotkeyConfirm, Priority: 11},
		{Key: "ctrl+c", Label: "quit", Context: HotkeyGlobal, Priority: 99},
	}
}

func activeHotkeyContexts(mode uiMode) []HotkeyContext {
	contexts := []HotkeyContext{HotkeyGlobal}
	switch mode {
	case uiModeFilter:
		contexts = append(contexts, HotkeyFilter)
	case uiModeDetail:
		contexts = append(contexts, HotkeyDetail)
	case uiModeForm:
		contexts = append(contexts, HotkeyForm)
	case uiModeConfirm:
		contexts = append(contexts, HotkeyConfirm)
	default:
		contexts = append(contexts, HotkeyList)
	}
	return contexts
}

// renderHotkeys lists the hotkeys of the given contexts in priority order.
func renderHotkeys(hotkeys []Hotkey, contexts []HotkeyContext) string {
	wanted := map[HotkeyContext]bool{}
	for _, ctx := range contexts {
		wanted[ctx] = true
	}
	active := make([]Hotkey, 0, len(hotkeys))
	for _, hk := range hotkeys {
		if wanted[hk.Context] {
			active = append(active, hk)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Priority < active[j].Priority })
	parts := make([]string, 0, len(active))
	for _, hk := range active {
		parts = append(parts, hk.Key+" "+hk.Label)
	}
	return strings.Join(parts, " · ")
}
