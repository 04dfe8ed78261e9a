package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down  key.Binding
	Up    key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Move mode (pick up the selected card, carry it, drop it)
	Move key.Binding

	// Card actions
	NewCard   key.Binding
	Duplicate key.Binding
	Draft     key.Binding
	Archive   key.Binding
	Restore   key.Binding

	// Board filter and bins
	CycleBoard key.Binding
	DraftBin   key.Binding
	ArchiveBin key.Binding

	// View toggles
	ToggleView      key.Binding
	ToggleCompleted key.Binding
	CycleSort       key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open card"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Move: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pick up / drop"),
		),
		NewCard: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new card"),
		),
		Duplicate: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "duplicate"),
		),
		Draft: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "move to drafts"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Restore: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "restore"),
		),
		CycleBoard: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "cycle board"),
		),
		DraftBin: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "draft bin"),
		),
		ArchiveBin: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "archive bin"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "genius/stage view"),
		),
		ToggleCompleted: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "show completed"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle sort"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Left, k.Right,
		k.Select, k.Move, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select, k.Back, k.Quit},
		{k.Move, k.NewCard, k.Duplicate, k.Draft, k.Archive, k.Restore},
		{k.CycleBoard, k.DraftBin, k.ArchiveBin, k.ToggleView, k.ToggleCompleted, k.CycleSort},
		{k.Help, k.Refresh},
	}
}
