// SPDX-License-Identifier: MPL-2.0

package showcase

import "github.com/charmbracelet/bubbles/key"

type (
	keyMap struct {
		Up         key.Binding
		Down       key.Binding
		Select     key.Binding
		NextRegion key.Binding
		PrevRegion key.Binding
		Copy       key.Binding
		PageUp     key.Binding
		PageDown   key.Binding
		Help       key.Binding
		Quit       key.Binding
		ForceQuit  key.Binding
	}

	// regionHelp adapts the key map to help.KeyMap for one region, so the
	// footer only lists keys that work where focus is.
	regionHelp struct {
		keys   keyMap
		region Region
	}
)

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		NextRegion: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next region")),
		PrevRegion: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "previous region")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy code")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "f", " "), key.WithHelp("pgdn", "page down")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (h regionHelp) ShortHelp() []key.Binding {
	k := h.keys
	switch h.region {
	case RegionSidebar:
		return []key.Binding{k.Up, k.Down, k.Select, k.NextRegion, k.Help, k.Quit}
	case RegionDemo:
		return []key.Binding{k.NextRegion, k.PrevRegion, k.ForceQuit}
	default:
		return []key.Binding{k.Up, k.Down, k.Copy, k.NextRegion, k.Help, k.Quit}
	}
}

// FullHelp implements help.KeyMap.
func (h regionHelp) FullHelp() [][]key.Binding {
	k := h.keys
	switch h.region {
	case RegionSidebar:
		return [][]key.Binding{
			{k.Up, k.Down, k.Select},
			{k.NextRegion, k.PrevRegion},
			{k.Help, k.Quit},
		}
	case RegionDemo:
		return [][]key.Binding{{k.NextRegion, k.PrevRegion, k.ForceQuit}}
	default:
		return [][]key.Binding{
			{k.Up, k.Down, k.PageUp, k.PageDown},
			{k.Copy, k.NextRegion, k.PrevRegion},
			{k.Help, k.Quit},
		}
	}
}
