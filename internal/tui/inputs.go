package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newTextInput(placeholder string, limit int, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}
	return in
}

// inputGroup is a column of text inputs with one focused at a time.
type inputGroup struct {
	inputs []textinput.Model
	focus  int
}

func newInputGroup(inputs ...textinput.Model) inputGroup {
	g := inputGroup{inputs: inputs}
	if len(g.inputs) > 0 {
		g.inputs[0].Focus()
	}
	return g
}

func (g *inputGroup) next() {
	g.move(1)
}

func (g *inputGroup) prev() {
	g.move(-1)
}

func (g *inputGroup) move(delta int) {
	if len(g.inputs) == 0 {
		return
	}
	g.inputs[g.focus].Blur()
	g.focus = (g.focus + delta + len(g.inputs)) % len(g.inputs)
	g.inputs[g.focus].Focus()
}

func (g *inputGroup) update(msg tea.Msg) tea.Cmd {
	if len(g.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	g.inputs[g.focus], cmd = g.inputs[g.focus].Update(msg)
	return cmd
}

func (g *inputGroup) value(i int) string {
	return g.inputs[i].Value()
}

func (g *inputGroup) setValue(i int, v string) {
	g.inputs[i].SetValue(v)
}

func (g *inputGroup) view(i int) string {
	return g.inputs[i].View()
}
