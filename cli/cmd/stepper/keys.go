package stepper

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Step   key.Binding
	Run    key.Binding
	Edit   key.Binding
	Accept key.Binding
	Cancel key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Step: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space/enter", "step"),
		),
		Run: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "run to completion"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit input"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "use input"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// editing enables the bindings of input editing and disables the others.
func (k *keyMap) editing(on bool) {
	for _, b := range []*key.Binding{&k.Step, &k.Run, &k.Edit, &k.Help, &k.Quit} {
		b.SetEnabled(!on)
	}

	k.Accept.SetEnabled(on)
	k.Cancel.SetEnabled(on)
}

// ShortHelp implements [help.KeyMap].
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Step, k.Run, k.Accept, k.Cancel, k.Help, k.Quit}
}

// FullHelp implements [help.KeyMap].
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Step, k.Run},
		{k.Edit, k.Accept, k.Cancel},
		{k.Help, k.Quit},
	}
}
